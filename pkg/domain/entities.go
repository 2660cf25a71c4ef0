// Package domain defines the hospital entities, value types, and
// rule evaluation primitives used by hospitalcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and sequence counters.
const (
	// EntityPatient identifies a patient file record.
	EntityPatient EntityType = "patient"
	// EntityAppointment identifies an appointment record.
	EntityAppointment EntityType = "appointment"
	// EntityInvoice identifies a billing invoice record.
	EntityInvoice EntityType = "invoice"
	// EntityStaff identifies a staff member record.
	EntityStaff EntityType = "staff"
	// EntityDepartment identifies a department record.
	EntityDepartment EntityType = "department"
	// EntityBedCategory identifies a bed inventory category record.
	EntityBedCategory EntityType = "bed_category"
	// EntityAttendance identifies a per-day staff attendance record.
	EntityAttendance EntityType = "staff_attendance"
)

// PatientStatus enumerates the canonical patient file states.
type PatientStatus string

// Canonical patient statuses used across admission and billing workflows.
const (
	PatientStatusActive         PatientStatus = "active"
	PatientStatusAdmitted       PatientStatus = "admitted"
	PatientStatusDischarged     PatientStatus = "discharged"
	PatientStatusPendingPayment PatientStatus = "pending_payment"
)

// AppointmentStatus enumerates appointment workflow states.
type AppointmentStatus string

// Canonical appointment statuses; the expected transition order is
// scheduled -> in_progress -> completed, with cancelled reachable from
// any non-terminal state.
const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// PaymentStatus enumerates invoice settlement states.
type PaymentStatus string

// Canonical invoice payment statuses.
const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
)

// StaffStatus enumerates staff employment states.
type StaffStatus string

// Canonical staff statuses.
const (
	StaffStatusActive    StaffStatus = "active"
	StaffStatusOnLeave   StaffStatus = "on_leave"
	StaffStatusSuspended StaffStatus = "suspended"
	StaffStatusResigned  StaffStatus = "resigned"
)

// DepartmentStatus enumerates department operational states.
type DepartmentStatus string

// Canonical department statuses.
const (
	DepartmentStatusActive   DepartmentStatus = "active"
	DepartmentStatusInactive DepartmentStatus = "inactive"
)

// AttendanceStatus enumerates daily attendance outcomes for a staff member.
type AttendanceStatus string

// Canonical attendance statuses.
const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusOnLeave AttendanceStatus = "on_leave"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records. Seq is the monotonic
// per-entity sequence number the display ID was minted from; listings are
// ordered by it.
type Base struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patient represents a patient file tracked by the hospital.
type Patient struct {
	Base
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	FullName     string        `json:"full_name"`
	DateOfBirth  time.Time     `json:"date_of_birth"`
	Age          int           `json:"age"`
	Gender       string        `json:"gender"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	Address      string        `json:"address"`
	BloodGroup   string        `json:"blood_group"`
	Status       PatientStatus `json:"status"`
	Deceased     bool          `json:"deceased"`
	DateOfDeath  *time.Time    `json:"date_of_death,omitempty"`
	CauseOfDeath *string       `json:"cause_of_death,omitempty"`
	// ParentFileID links a family member to the head-of-file patient record.
	ParentFileID *string `json:"parent_file_id,omitempty"`
}

// Appointment represents a scheduled consultation. PatientName is
// denormalized at booking time and is not kept in sync with later
// renames of the patient record.
type Appointment struct {
	Base
	PatientID   string            `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	DoctorName  string            `json:"doctor_name"`
	Department  string            `json:"department"`
	Date        time.Time         `json:"date"`
	TimeSlot    string            `json:"time_slot"`
	Reason      string            `json:"reason"`
	Status      AppointmentStatus `json:"status"`
}

// Invoice represents a billing record. DateCreated is fixed at creation
// and never rewritten by updates.
type Invoice struct {
	Base
	PatientID     string        `json:"patient_id"`
	PatientName   string        `json:"patient_name"`
	Amount        float64       `json:"amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Method        string        `json:"method"`
	DateCreated   time.Time     `json:"date_created"`
}

// Staff represents an employed staff member.
type Staff struct {
	Base
	FirstName  string      `json:"first_name"`
	MiddleName *string     `json:"middle_name,omitempty"`
	LastName   string      `json:"last_name"`
	FullName   string      `json:"full_name"`
	Role       string      `json:"role"`
	Department string      `json:"department"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
	Status     StaffStatus `json:"status"`
}

// Department represents an organizational unit. Deleting a department does
// not cascade to staff; their Department field goes stale until reassigned.
type Department struct {
	Base
	Name       string           `json:"name"`
	Head       string           `json:"head"`
	StaffCount int              `json:"staff_count"`
	Status     DepartmentStatus `json:"status"`
}

// BedCategory represents a bed inventory bucket. AvailableBeds is derived
// as TotalBeds - OccupiedBeds whenever either input changes.
type BedCategory struct {
	Base
	Name          string `json:"name"`
	TotalBeds     int    `json:"total_beds"`
	OccupiedBeds  int    `json:"occupied_beds"`
	AvailableBeds int    `json:"available_beds"`
}

// Session is one contiguous login-to-logout interval within a day's
// attendance record. LogoutTime and DurationMinutes stay nil while the
// session is open.
type Session struct {
	LoginTime       time.Time  `json:"login_time"`
	LogoutTime      *time.Time `json:"logout_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

// StaffAttendance is the single attendance record for one staff member on
// one calendar day. At most one session may be open at a time;
// TotalHoursWorked is the sum of closed-session durations divided by 60.
type StaffAttendance struct {
	Base
	StaffID          string           `json:"staff_id"`
	StaffName        string           `json:"staff_name"`
	Date             time.Time        `json:"date"`
	Status           AttendanceStatus `json:"status"`
	CheckInTime      time.Time        `json:"check_in_time"`
	CheckOutTime     *time.Time       `json:"check_out_time,omitempty"`
	LateMinutes      int              `json:"late_minutes"`
	TotalHoursWorked float64          `json:"total_hours_worked"`
	Sessions         []Session        `json:"sessions"`
}

// OpenSession returns the index of the open session, or -1 when every
// session is closed.
func (a StaffAttendance) OpenSession() int {
	for i := len(a.Sessions) - 1; i >= 0; i-- {
		if a.Sessions[i].LogoutTime == nil {
			return i
		}
	}
	return -1
}

// Notification is an unread-by-default message derived from a mutation.
// Notifications are only ever produced by the store layer, never by callers.
type Notification struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Unread      bool      `json:"unread"`
}

// ActivityEntry is one audit-trail line derived from a mutation.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
	Actor     string    `json:"actor"`
	Icon      string    `json:"icon"`
	Timestamp time.Time `json:"timestamp"`
}

// Actor identifies the acting user recorded verbatim in activity entries.
type Actor struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in the audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
