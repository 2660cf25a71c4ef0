package core_test

import (
	"context"
	"testing"
	"time"

	"hospitalcore/internal/core"
	"hospitalcore/pkg/domain"
)

func seedStaff(t *testing.T, svc *core.Service) domain.Staff {
	t.Helper()
	st, _, err := svc.CreateStaff(context.Background(), admin, domain.Staff{
		FirstName: "Ada", LastName: "Okoro", Role: "Nurse", Status: domain.StaffStatusActive,
	})
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return st
}

func countNotifications(svc *core.Service, title string) int {
	n := 0
	for _, note := range svc.Notifications() {
		if note.Title == title {
			n++
		}
	}
	return n
}

func TestFirstLoginCreatesRecordAndNotifiesOnce(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	st := seedStaff(t, svc)

	*clock = time.Date(2026, time.March, 2, 7, 45, 0, 0, time.UTC)
	rec, _, err := svc.RecordLogin(ctx, st.ID)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.ID == "" || rec.StaffID != st.ID || rec.StaffName != "Ada Okoro" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.Sessions) != 1 {
		t.Fatalf("want one session, got %d", len(rec.Sessions))
	}
	if rec.Sessions[0].LogoutTime != nil {
		t.Fatal("first session should be open")
	}
	if rec.Status != domain.AttendanceStatusPresent || rec.LateMinutes != 0 {
		t.Fatalf("07:45 login should be present: %+v", rec)
	}
	if !rec.CheckInTime.Equal(*clock) {
		t.Fatalf("check-in time: %v", rec.CheckInTime)
	}
	if got := countNotifications(svc, "Staff Checked In"); got != 1 {
		t.Fatalf("want exactly one checked-in notification, got %d", got)
	}
}

func TestSecondLoginAppendsSessionSilently(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	st := seedStaff(t, svc)

	*clock = time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	first, _, err := svc.RecordLogin(ctx, st.ID)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	*clock = clock.Add(2 * time.Hour)
	if _, _, err := svc.RecordLogout(ctx, st.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	notesBefore := countNotifications(svc, "Staff Checked In")
	*clock = clock.Add(time.Hour)
	second, _, err := svc.RecordLogin(ctx, st.ID)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second login created a new record: %s vs %s", second.ID, first.ID)
	}
	if len(second.Sessions) != 2 {
		t.Fatalf("want two sessions, got %d", len(second.Sessions))
	}
	if second.Sessions[1].LogoutTime != nil {
		t.Fatal("appended session should be open")
	}
	if got := countNotifications(svc, "Staff Checked In"); got != notesBefore {
		t.Fatalf("re-login must not notify: %d -> %d", notesBefore, got)
	}

	// Only one record exists for the day.
	if got := len(svc.TodayAttendance()); got != 1 {
		t.Fatalf("want one record today, got %d", got)
	}
}

func TestLogoutClosesSessionAndComputesHours(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	st := seedStaff(t, svc)

	*clock = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	if _, _, err := svc.RecordLogin(ctx, st.ID); err != nil {
		t.Fatalf("login: %v", err)
	}

	*clock = clock.Add(90 * time.Minute)
	rec, _, err := svc.RecordLogout(ctx, st.ID)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Sessions[0].LogoutTime == nil || !rec.Sessions[0].LogoutTime.Equal(*clock) {
		t.Fatalf("logout time not set: %+v", rec.Sessions[0])
	}
	if rec.Sessions[0].DurationMinutes == nil || *rec.Sessions[0].DurationMinutes != 90 {
		t.Fatalf("duration: %+v", rec.Sessions[0].DurationMinutes)
	}
	if rec.TotalHoursWorked != 1.5 {
		t.Fatalf("total hours after one session: %v", rec.TotalHoursWorked)
	}
	if rec.CheckOutTime == nil || !rec.CheckOutTime.Equal(*clock) {
		t.Fatalf("check-out time: %v", rec.CheckOutTime)
	}

	// Second session of 45 minutes brings the day to 2.25 hours.
	*clock = clock.Add(30 * time.Minute)
	if _, _, err := svc.RecordLogin(ctx, st.ID); err != nil {
		t.Fatalf("re-login: %v", err)
	}
	*clock = clock.Add(45 * time.Minute)
	rec, _, err = svc.RecordLogout(ctx, st.ID)
	if err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if rec.TotalHoursWorked != 2.25 {
		t.Fatalf("total hours after two sessions: %v", rec.TotalHoursWorked)
	}
	if rec.CheckOutTime == nil || !rec.CheckOutTime.Equal(*clock) {
		t.Fatalf("check-out should track the latest logout: %v", rec.CheckOutTime)
	}
}

func TestLogoutWithoutOpenSessionIsNoop(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	st := seedStaff(t, svc)

	// No record at all.
	if _, _, err := svc.RecordLogout(ctx, st.ID); err != nil {
		t.Fatalf("logout with no record: %v", err)
	}
	if got := len(svc.Store().ListAttendance()); got != 0 {
		t.Fatalf("logout must not create records, got %d", got)
	}

	*clock = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	if _, _, err := svc.RecordLogin(ctx, st.ID); err != nil {
		t.Fatalf("login: %v", err)
	}
	*clock = clock.Add(time.Hour)
	first, _, err := svc.RecordLogout(ctx, st.ID)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}

	// Everything already closed: idempotent.
	*clock = clock.Add(time.Hour)
	again, _, err := svc.RecordLogout(ctx, st.ID)
	if err != nil {
		t.Fatalf("repeat logout: %v", err)
	}
	if !again.UpdatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("repeat logout mutated the record: %v vs %v", again.UpdatedAt, first.UpdatedAt)
	}
	if again.TotalHoursWorked != first.TotalHoursWorked {
		t.Fatalf("hours changed on no-op: %v", again.TotalHoursWorked)
	}
}

func TestLatenessThreshold(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	late := seedStaff(t, svc)
	early, _, err := svc.CreateStaff(ctx, admin, domain.Staff{FirstName: "Ben", LastName: "Adeyemi", Role: "Technician"})
	if err != nil {
		t.Fatalf("seed second staff: %v", err)
	}

	*clock = time.Date(2026, time.March, 2, 8, 15, 0, 0, time.UTC)
	rec, _, err := svc.RecordLogin(ctx, late.ID)
	if err != nil {
		t.Fatalf("late login: %v", err)
	}
	if rec.Status != domain.AttendanceStatusLate || rec.LateMinutes != 15 {
		t.Fatalf("08:15 login: want late/15, got %s/%d", rec.Status, rec.LateMinutes)
	}

	*clock = time.Date(2026, time.March, 2, 7, 59, 0, 0, time.UTC)
	rec, _, err = svc.RecordLogin(ctx, early.ID)
	if err != nil {
		t.Fatalf("early login: %v", err)
	}
	if rec.Status != domain.AttendanceStatusPresent || rec.LateMinutes != 0 {
		t.Fatalf("07:59 login: want present/0, got %s/%d", rec.Status, rec.LateMinutes)
	}
}

func TestConfigurableWorkdayStart(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	st := seedStaff(t, svc)

	svc.SetWorkdayStart(core.WorkdayStart{Hour: 9, Minute: 30})
	*clock = time.Date(2026, time.March, 2, 9, 45, 0, 0, time.UTC)
	rec, _, err := svc.RecordLogin(ctx, st.ID)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Status != domain.AttendanceStatusLate || rec.LateMinutes != 15 {
		t.Fatalf("09:45 vs 09:30: want late/15, got %s/%d", rec.Status, rec.LateMinutes)
	}
}

func TestUnknownStaffSilentlyIgnored(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, _, err := svc.RecordLogin(ctx, "STF-99999")
	if err != nil {
		t.Fatalf("unknown staff should not error: %v", err)
	}
	if rec.ID != "" {
		t.Fatalf("no record expected, got %+v", rec)
	}
	if got := len(svc.Store().ListAttendance()); got != 0 {
		t.Fatalf("attendance created for unknown staff: %d", got)
	}
	if got := countNotifications(svc, "Staff Checked In"); got != 0 {
		t.Fatalf("notification for unknown staff: %d", got)
	}
}

func TestTodayAttendanceFiltersByCalendarDay(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()
	st := seedStaff(t, svc)

	*clock = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	if _, _, err := svc.RecordLogin(ctx, st.ID); err != nil {
		t.Fatalf("day one login: %v", err)
	}
	*clock = clock.Add(8 * time.Hour)
	if _, _, err := svc.RecordLogout(ctx, st.ID); err != nil {
		t.Fatalf("day one logout: %v", err)
	}

	// Next day: a fresh record, and a fresh check-in notification.
	*clock = time.Date(2026, time.March, 3, 8, 5, 0, 0, time.UTC)
	rec, _, err := svc.RecordLogin(ctx, st.ID)
	if err != nil {
		t.Fatalf("day two login: %v", err)
	}
	if rec.LateMinutes != 5 {
		t.Fatalf("day two lateness: %d", rec.LateMinutes)
	}

	today := svc.TodayAttendance()
	if len(today) != 1 {
		t.Fatalf("want one record today, got %d", len(today))
	}
	if !core.SameDay(today[0].Date, *clock) {
		t.Fatalf("record from the wrong day: %v", today[0].Date)
	}
	if got := len(svc.Store().ListAttendance()); got != 2 {
		t.Fatalf("want two records total, got %d", got)
	}
	if got := countNotifications(svc, "Staff Checked In"); got != 2 {
		t.Fatalf("one notification per first daily login: got %d", got)
	}
}
