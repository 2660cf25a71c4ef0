package core

import "hospitalcore/pkg/domain"

type (
	EntityType         = domain.EntityType
	PatientStatus      = domain.PatientStatus
	AppointmentStatus  = domain.AppointmentStatus
	PaymentStatus      = domain.PaymentStatus
	StaffStatus        = domain.StaffStatus
	DepartmentStatus   = domain.DepartmentStatus
	AttendanceStatus   = domain.AttendanceStatus
	Severity           = domain.Severity
	Base               = domain.Base
	Patient            = domain.Patient
	Appointment        = domain.Appointment
	Invoice            = domain.Invoice
	Staff              = domain.Staff
	Department         = domain.Department
	BedCategory        = domain.BedCategory
	StaffAttendance    = domain.StaffAttendance
	Session            = domain.Session
	Notification       = domain.Notification
	ActivityEntry      = domain.ActivityEntry
	Actor              = domain.Actor
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	Rule               = domain.Rule
	RuleView           = domain.RuleView
	RulesEngine        = domain.RulesEngine
)

const (
	EntityPatient     = domain.EntityPatient
	EntityAppointment = domain.EntityAppointment
	EntityInvoice     = domain.EntityInvoice
	EntityStaff       = domain.EntityStaff
	EntityDepartment  = domain.EntityDepartment
	EntityBedCategory = domain.EntityBedCategory
	EntityAttendance  = domain.EntityAttendance
)

const (
	PatientStatusActive         = domain.PatientStatusActive
	PatientStatusAdmitted       = domain.PatientStatusAdmitted
	PatientStatusDischarged     = domain.PatientStatusDischarged
	PatientStatusPendingPayment = domain.PatientStatusPendingPayment
)

const (
	AppointmentStatusScheduled  = domain.AppointmentStatusScheduled
	AppointmentStatusInProgress = domain.AppointmentStatusInProgress
	AppointmentStatusCompleted  = domain.AppointmentStatusCompleted
	AppointmentStatusCancelled  = domain.AppointmentStatusCancelled
)

const (
	AttendanceStatusPresent = domain.AttendanceStatusPresent
	AttendanceStatusLate    = domain.AttendanceStatusLate
	AttendanceStatusAbsent  = domain.AttendanceStatusAbsent
	AttendanceStatusOnLeave = domain.AttendanceStatusOnLeave
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
