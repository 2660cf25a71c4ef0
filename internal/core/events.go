package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultActivityCap bounds the activity log; the oldest entries are
// truncated once the cap is exceeded.
const DefaultActivityCap = 50

// Emitter turns committed Change records into Notification and ActivityEntry
// records. It is strictly an observer: it runs after commit, keeps its own
// state, and can never fail the mutation that fed it.
type Emitter struct {
	mu            sync.Mutex
	notifications []Notification
	activities    []ActivityEntry
	activityCap   int
	nowFn         func() time.Time
	logger        *zap.Logger
}

// NewEmitter constructs an emitter with the default activity cap.
func NewEmitter() *Emitter {
	return &Emitter{
		activityCap: DefaultActivityCap,
		nowFn:       func() time.Time { return time.Now().UTC() },
		logger:      zap.NewNop(),
	}
}

// SetLogger attaches a structured logger. A nil logger is ignored.
func (e *Emitter) SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	e.mu.Lock()
	e.logger = logger
	e.mu.Unlock()
}

// SetActivityCap overrides the activity log bound. Values below one are ignored.
func (e *Emitter) SetActivityCap(n int) {
	if n < 1 {
		return
	}
	e.mu.Lock()
	e.activityCap = n
	e.activities = truncate(e.activities, n)
	e.mu.Unlock()
}

// SetNowFunc overrides the emitter clock. Intended for deterministic tests.
func (e *Emitter) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.nowFn = fn
	e.mu.Unlock()
}

func truncate(entries []ActivityEntry, n int) []ActivityEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// Notify prepends an unread notification. Fire-and-forget.
func (e *Emitter) Notify(category, icon, title, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := Notification{
		ID:          uuid.NewString(),
		Category:    category,
		Icon:        icon,
		Title:       title,
		Description: description,
		Timestamp:   e.nowFn(),
		Unread:      true,
	}
	e.notifications = append([]Notification{n}, e.notifications...)
	e.logger.Info("notification emitted",
		zap.String("category", category),
		zap.String("title", title),
	)
}

// LogActivity prepends an audit entry and truncates the log to the cap.
// Fire-and-forget.
func (e *Emitter) LogActivity(action, module, actor, icon string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry := ActivityEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Module:    module,
		Actor:     actor,
		Icon:      icon,
		Timestamp: e.nowFn(),
	}
	e.activities = append([]ActivityEntry{entry}, e.activities...)
	e.activities = truncate(e.activities, e.activityCap)
}

// Notifications returns the notification list, newest first.
func (e *Emitter) Notifications() []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

// Activities returns the activity log, newest first.
func (e *Emitter) Activities() []ActivityEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ActivityEntry, len(e.activities))
	copy(out, e.activities)
	return out
}

// MarkRead marks a notification as read. Unknown IDs are ignored.
func (e *Emitter) MarkRead(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.notifications {
		if e.notifications[i].ID == id {
			e.notifications[i].Unread = false
			return
		}
	}
}

// ClearAll drops every notification. The activity log is unaffected.
func (e *Emitter) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifications = nil
}

// Delete removes a single notification. Unknown IDs are ignored.
func (e *Emitter) Delete(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.notifications {
		if e.notifications[i].ID == id {
			e.notifications = append(e.notifications[:i], e.notifications[i+1:]...)
			return
		}
	}
}

// Publish derives notifications and activity entries from committed changes.
// Creates and deletes always produce both records; updates only when a
// watched status field actually changed. Attendance records notify on create
// only (the first check-in of the day) and stay silent on session updates.
func (e *Emitter) Publish(actor Actor, changes []Change) {
	for _, change := range changes {
		switch change.Action {
		case ActionCreate:
			e.publishCreate(actor, change)
		case ActionUpdate:
			e.publishUpdate(actor, change)
		case ActionDelete:
			e.publishDelete(actor, change)
		}
	}
}

func (e *Emitter) publishCreate(actor Actor, change Change) {
	module := moduleName(change.Entity)
	name, id := changeSubject(change.After)
	switch change.Entity {
	case EntityAttendance:
		e.Notify(module, "log-in", "Staff Checked In", fmt.Sprintf("%s checked in (%s)", name, id))
		e.LogActivity(fmt.Sprintf("%s checked in", name), module, actor.Name, "log-in")
	case EntityPatient:
		e.Notify(module, "user-plus", "New Patient Registered", fmt.Sprintf("%s was registered (%s)", name, id))
		e.LogActivity(fmt.Sprintf("Registered patient %s (%s)", name, id), module, actor.Name, "user-plus")
	case EntityAppointment:
		e.Notify(module, "calendar-plus", "Appointment Scheduled", fmt.Sprintf("Appointment for %s was scheduled (%s)", name, id))
		e.LogActivity(fmt.Sprintf("Scheduled appointment %s for %s", id, name), module, actor.Name, "calendar-plus")
	case EntityInvoice:
		e.Notify(module, "file-plus", "Invoice Created", fmt.Sprintf("Invoice %s was created for %s", id, name))
		e.LogActivity(fmt.Sprintf("Created invoice %s for %s", id, name), module, actor.Name, "file-plus")
	default:
		label := entityLabel(change.Entity)
		e.Notify(module, "plus-circle", fmt.Sprintf("New %s Added", label), fmt.Sprintf("%s was added (%s)", name, id))
		e.LogActivity(fmt.Sprintf("Added %s %s (%s)", moduleNoun(change.Entity), name, id), module, actor.Name, "plus-circle")
	}
}

func (e *Emitter) publishUpdate(actor Actor, change Change) {
	prev, next, changed := statusChange(change)
	if !changed {
		return
	}
	module := moduleName(change.Entity)
	name, id := changeSubject(change.After)
	label := entityLabel(change.Entity)
	e.Notify(module, "refresh", fmt.Sprintf("%s Status Updated", label),
		fmt.Sprintf("%s (%s) moved from %s to %s", name, id, prev, next))
	e.LogActivity(fmt.Sprintf("Changed %s %s status from %s to %s", moduleNoun(change.Entity), name, prev, next),
		module, actor.Name, "refresh")
}

func (e *Emitter) publishDelete(actor Actor, change Change) {
	module := moduleName(change.Entity)
	name, id := changeSubject(change.Before)
	label := entityLabel(change.Entity)
	e.Notify(module, "trash", fmt.Sprintf("%s Removed", label), fmt.Sprintf("%s was removed (%s)", name, id))
	e.LogActivity(fmt.Sprintf("Removed %s %s (%s)", moduleNoun(change.Entity), name, id), module, actor.Name, "trash")
}

// statusChange reports the before/after values of the entity's watched
// status field when the update actually changed it.
func statusChange(change Change) (string, string, bool) {
	switch before := change.Before.(type) {
	case Patient:
		after, ok := change.After.(Patient)
		if !ok || before.Status == after.Status {
			return "", "", false
		}
		return string(before.Status), string(after.Status), true
	case Appointment:
		after, ok := change.After.(Appointment)
		if !ok || before.Status == after.Status {
			return "", "", false
		}
		return string(before.Status), string(after.Status), true
	case Invoice:
		after, ok := change.After.(Invoice)
		if !ok || before.PaymentStatus == after.PaymentStatus {
			return "", "", false
		}
		return string(before.PaymentStatus), string(after.PaymentStatus), true
	case Staff:
		after, ok := change.After.(Staff)
		if !ok || before.Status == after.Status {
			return "", "", false
		}
		return string(before.Status), string(after.Status), true
	case Department:
		after, ok := change.After.(Department)
		if !ok || before.Status == after.Status {
			return "", "", false
		}
		return string(before.Status), string(after.Status), true
	default:
		return "", "", false
	}
}

// changeSubject extracts a display name and ID from a change payload.
func changeSubject(payload any) (string, string) {
	switch v := payload.(type) {
	case Patient:
		return v.FullName, v.ID
	case Appointment:
		return v.PatientName, v.ID
	case Invoice:
		return v.PatientName, v.ID
	case Staff:
		return v.FullName, v.ID
	case Department:
		return v.Name, v.ID
	case BedCategory:
		return v.Name, v.ID
	case StaffAttendance:
		return v.StaffName, v.ID
	default:
		return "", ""
	}
}

func moduleName(entity EntityType) string {
	switch entity {
	case EntityPatient:
		return "Patients"
	case EntityAppointment:
		return "Appointments"
	case EntityInvoice:
		return "Billing"
	case EntityStaff:
		return "Staff"
	case EntityDepartment:
		return "Departments"
	case EntityBedCategory:
		return "Bed Management"
	case EntityAttendance:
		return "Attendance"
	default:
		return string(entity)
	}
}

func entityLabel(entity EntityType) string {
	switch entity {
	case EntityPatient:
		return "Patient"
	case EntityAppointment:
		return "Appointment"
	case EntityInvoice:
		return "Invoice"
	case EntityStaff:
		return "Staff Member"
	case EntityDepartment:
		return "Department"
	case EntityBedCategory:
		return "Bed Category"
	case EntityAttendance:
		return "Attendance Record"
	default:
		return string(entity)
	}
}

func moduleNoun(entity EntityType) string {
	switch entity {
	case EntityPatient:
		return "patient"
	case EntityAppointment:
		return "appointment"
	case EntityInvoice:
		return "invoice"
	case EntityStaff:
		return "staff member"
	case EntityDepartment:
		return "department"
	case EntityBedCategory:
		return "bed category"
	case EntityAttendance:
		return "attendance record"
	default:
		return string(entity)
	}
}
