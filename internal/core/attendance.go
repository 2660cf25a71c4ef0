package core

import (
	"context"
	"time"
)

// attendanceState enumerates the per-(staff, day) states of the session
// tracker. The login/logout handlers are transitions over these states
// rather than ad-hoc branching.
type attendanceState int

const (
	// attendanceNoRecord: the staff member has no record for the day.
	attendanceNoRecord attendanceState = iota
	// attendanceSessionOpen: the day's record has an unclosed session.
	attendanceSessionOpen
	// attendanceSessionClosed: a record exists and every session is closed.
	attendanceSessionClosed
)

func attendanceStateOf(found bool, record StaffAttendance) attendanceState {
	if !found {
		return attendanceNoRecord
	}
	if record.OpenSession() >= 0 {
		return attendanceSessionOpen
	}
	return attendanceSessionClosed
}

// RecordLogin opens an attendance session for the staff member's current
// calendar day.
//
//   - No record yet: a new record is created with one open session; lateness
//     is computed against the workday start, and exactly one "checked in"
//     notification goes out.
//   - Record exists with all sessions closed: a fresh open session is
//     appended silently.
//   - Record exists with an open session: no-op.
//
// An unknown staffID is silently ignored.
func (s *Service) RecordLogin(ctx context.Context, staffID string) (StaffAttendance, Result, error) {
	start := time.Now()
	var record StaffAttendance
	var actor Actor
	changes, res, err := s.store.RunInTransaction(ctx, func(tx *Transaction) error {
		staff, ok := tx.FindStaff(staffID)
		if !ok {
			return nil
		}
		actor = Actor{Name: staff.FullName, Role: staff.Role}
		now := tx.Now()
		existing, found := tx.FindAttendanceForDay(staffID, now)

		switch attendanceStateOf(found, existing) {
		case attendanceNoRecord:
			rec := StaffAttendance{
				StaffID:     staffID,
				StaffName:   staff.FullName,
				Date:        DayOf(now),
				CheckInTime: now,
				Status:      AttendanceStatusPresent,
				Sessions:    []Session{{LoginTime: now}},
			}
			if late := LateMinutes(now, s.workdayStart.Hour, s.workdayStart.Minute); late > 0 {
				rec.Status = AttendanceStatusLate
				rec.LateMinutes = late
			}
			created, err := tx.CreateAttendance(rec)
			if err != nil {
				return err
			}
			record = created
		case attendanceSessionClosed:
			updated, err := tx.UpdateAttendance(existing.ID, func(a *StaffAttendance) error {
				a.Sessions = append(a.Sessions, Session{LoginTime: now})
				return nil
			})
			if err != nil {
				return err
			}
			record = updated
		case attendanceSessionOpen:
			// Already logged in; nothing to open.
			record = existing
		}
		return nil
	})
	s.observe("record_login", actor, changes, res, err, start)
	return record, res, err
}

// RecordLogout closes the open session of the staff member's record for the
// current calendar day: LogoutTime and DurationMinutes are set, CheckOutTime
// moves to now, and TotalHoursWorked is recomputed over all closed sessions.
// With no record or no open session the call is a no-op, and no notification
// is ever emitted for a logout.
func (s *Service) RecordLogout(ctx context.Context, staffID string) (StaffAttendance, Result, error) {
	start := time.Now()
	var record StaffAttendance
	var actor Actor
	changes, res, err := s.store.RunInTransaction(ctx, func(tx *Transaction) error {
		staff, ok := tx.FindStaff(staffID)
		if !ok {
			return nil
		}
		actor = Actor{Name: staff.FullName, Role: staff.Role}
		now := tx.Now()
		existing, found := tx.FindAttendanceForDay(staffID, now)

		if attendanceStateOf(found, existing) != attendanceSessionOpen {
			record = existing
			return nil
		}
		updated, err := tx.UpdateAttendance(existing.ID, func(a *StaffAttendance) error {
			open := a.OpenSession()
			logout := now
			minutes := SessionMinutes(a.Sessions[open].LoginTime, logout)
			a.Sessions[open].LogoutTime = &logout
			a.Sessions[open].DurationMinutes = &minutes

			total := 0
			for _, sess := range a.Sessions {
				if sess.DurationMinutes != nil {
					total += *sess.DurationMinutes
				}
			}
			a.TotalHoursWorked = RoundHours(total)
			checkout := now
			a.CheckOutTime = &checkout
			return nil
		})
		if err != nil {
			return err
		}
		record = updated
		return nil
	})
	s.observe("record_logout", actor, changes, res, err, start)
	return record, res, err
}

// TodayAttendance returns the attendance records whose date falls on the
// current calendar day. Pure filter; nothing is mutated.
func (s *Service) TodayAttendance() []StaffAttendance {
	now := s.store.Now()
	all := s.store.ListAttendance()
	out := make([]StaffAttendance, 0, len(all))
	for _, a := range all {
		if SameDay(a.Date, now) {
			out = append(out, a)
		}
	}
	return out
}

// AttendanceForStaff returns the record for one staff member on the calendar
// day containing t, if present.
func (s *Service) AttendanceForStaff(staffID string, t time.Time) (StaffAttendance, bool) {
	for _, a := range s.store.ListAttendance() {
		if a.StaffID == staffID && SameDay(a.Date, t) {
			return a, true
		}
	}
	return StaffAttendance{}, false
}
