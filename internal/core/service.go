package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hospitalcore/internal/config"
)

// WorkdayStart is the daily attendance lateness threshold.
type WorkdayStart struct {
	Hour   int
	Minute int
}

// Service exposes the transactional operations of the hospital domain store.
// Every mutation runs as one atomic sequence: mutate, recompute derived
// fields, evaluate rules, commit, then publish the committed changes to the
// emitter and metrics observers.
type Service struct {
	store        *MemoryStore
	emitter      *Emitter
	logger       *zap.Logger
	metrics      *Metrics
	workdayStart WorkdayStart
}

// NewService constructs a service backed by the supplied store.
func NewService(store *MemoryStore) *Service {
	return &Service{
		store:        store,
		emitter:      NewEmitter(),
		logger:       zap.NewNop(),
		workdayStart: WorkdayStart{Hour: 8},
	}
}

// NewInMemoryService creates a service and in-memory store with the given rules engine.
func NewInMemoryService(engine *RulesEngine) *Service {
	return NewService(NewMemoryStore(engine))
}

// NewServiceFromConfig creates an in-memory service with the attendance and
// activity settings from cfg applied: the workday start drives lateness
// computation and the activity cap bounds the audit trail.
func NewServiceFromConfig(cfg *config.Config, engine *RulesEngine) (*Service, error) {
	hour, minute, err := cfg.Attendance.StartClock()
	if err != nil {
		return nil, err
	}
	svc := NewInMemoryService(engine)
	svc.SetWorkdayStart(WorkdayStart{Hour: hour, Minute: minute})
	svc.emitter.SetActivityCap(cfg.Activity.MaxEntries)
	return svc, nil
}

// Store returns the underlying storage implementation.
func (s *Service) Store() *MemoryStore {
	return s.store
}

// Emitter returns the event emitter owned by the service.
func (s *Service) Emitter() *Emitter {
	return s.emitter
}

// SetLogger attaches a structured logger to the service and its emitter.
// A nil logger is ignored.
func (s *Service) SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	s.logger = logger
	s.emitter.SetLogger(logger)
}

// SetMetrics attaches a metrics observer.
func (s *Service) SetMetrics(m *Metrics) {
	s.metrics = m
}

// SetWorkdayStart overrides the lateness threshold for attendance check-ins.
func (s *Service) SetWorkdayStart(start WorkdayStart) {
	s.workdayStart = start
}

// commit runs fn in a store transaction and, on success, feeds the committed
// changes to the observers. Observer failures cannot occur by construction;
// emission is fire-and-forget.
func (s *Service) commit(ctx context.Context, operation string, actor Actor, fn func(tx *Transaction) error) (Result, error) {
	start := time.Now()
	changes, res, err := s.store.RunInTransaction(ctx, fn)
	s.observe(operation, actor, changes, res, err, start)
	return res, err
}

// observe records the outcome of one operation with the metrics, logging,
// and event observers. Committed changes publish; failures only log.
func (s *Service) observe(operation string, actor Actor, changes []Change, res Result, err error, start time.Time) {
	s.metrics.ObserveOperation(operation, err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("operation failed", zap.String("operation", operation), zap.Error(err))
		return
	}
	s.metrics.ObserveChanges(changes)
	s.metrics.ObserveViolations(res)
	for _, v := range res.Violations {
		s.logger.Warn("rule violation",
			zap.String("rule", v.Rule),
			zap.String("severity", string(v.Severity)),
			zap.String("entity", string(v.Entity)),
			zap.String("entity_id", v.EntityID),
			zap.String("message", v.Message),
		)
	}
	s.emitter.Publish(actor, changes)
}

// CreatePatient registers a new patient file.
func (s *Service) CreatePatient(ctx context.Context, actor Actor, patient Patient) (Patient, Result, error) {
	var created Patient
	res, err := s.commit(ctx, "create_patient", actor, func(tx *Transaction) error {
		var err error
		created, err = tx.CreatePatient(patient)
		return err
	})
	return created, res, err
}

// UpdatePatient mutates a patient file using the provided mutator.
func (s *Service) UpdatePatient(ctx context.Context, actor Actor, id string, mutator func(*Patient) error) (Patient, Result, error) {
	var updated Patient
	res, err := s.commit(ctx, "update_patient", actor, func(tx *Transaction) error {
		var err error
		updated, err = tx.UpdatePatient(id, mutator)
		return err
	})
	return updated, res, err
}

// DeletePatient removes a patient file. The reason, when supplied, is
// appended to the audit trail.
func (s *Service) DeletePatient(ctx context.Context, actor Actor, id, reason string) (Result, error) {
	res, err := s.commit(ctx, "delete_patient", actor, func(tx *Transaction) error {
		return tx.DeletePatient(id)
	})
	if err == nil && reason != "" {
		s.emitter.LogActivity(fmt.Sprintf("Removal reason for %s: %s", id, reason), moduleName(EntityPatient), actor.Name, "trash")
	}
	return res, err
}

// CreateAppointment books a new appointment, denormalizing the patient name
// when the reference resolves.
func (s *Service) CreateAppointment(ctx context.Context, actor Actor, appointment Appointment) (Appointment, Result, error) {
	var created Appointment
	res, err := s.commit(ctx, "create_appointment", actor, func(tx *Transaction) error {
		var err error
		created, err = tx.CreateAppointment(appointment)
		return err
	})
	return created, res, err
}

// UpdateAppointment mutates an appointment.
func (s *Service) UpdateAppointment(ctx context.Context, actor Actor, id string, mutator func(*Appointment) error) (Appointment, Result, error) {
	var updated Appointment
	res, err := s.commit(ctx, "update_appointment", actor, func(tx *Transaction) error {
		var err error
		updated, err = tx.UpdateAppointment(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteAppointment removes an appointment.
func (s *Service) DeleteAppointment(ctx context.Context, actor Actor, id, reason string) (Result, error) {
	res, err := s.commit(ctx, "delete_appointment", actor, func(tx *Transaction) error {
		return tx.DeleteAppointment(id)
	})
	if err == nil && reason != "" {
		s.emitter.LogActivity(fmt.Sprintf("Removal reason for %s: %s", id, reason), moduleName(EntityAppointment), actor.Name, "trash")
	}
	return res, err
}

// CreateInvoice records a new invoice.
func (s *Service) CreateInvoice(ctx context.Context, actor Actor, invoice Invoice) (Invoice, Result, error) {
	var created Invoice
	res, err := s.commit(ctx, "create_invoice", actor, func(tx *Transaction) error {
		var err error
		created, err = tx.CreateInvoice(invoice)
		return err
	})
	return created, res, err
}

// UpdateInvoice mutates an invoice. DateCreated is preserved across updates.
func (s *Service) UpdateInvoice(ctx context.Context, actor Actor, id string, mutator func(*Invoice) error) (Invoice, Result, error) {
	var updated Invoice
	res, err := s.commit(ctx, "update_invoice", actor, func(tx *Transaction) error {
		var err error
		updated, err = tx.UpdateInvoice(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteInvoice removes an invoice.
func (s *Service) DeleteInvoice(ctx context.Context, actor Actor, id, reason string) (Result, error) {
	res, err := s.commit(ctx, "delete_invoice", actor, func(tx *Transaction) error {
		return tx.DeleteInvoice(id)
	})
	if err == nil && reason != "" {
		s.emitter.LogActivity(fmt.Sprintf("Removal reason for %s: %s", id, reason), moduleName(EntityInvoice), actor.Name, "trash")
	}
	return res, err
}

// CreateStaff registers a new staff member.
func (s *Service) CreateStaff(ctx context.Context, actor Actor, staff Staff) (Staff, Result, error) {
	var created Staff
	res, err := s.commit(ctx, "create_staff", actor, func(tx *Transaction) error {
		var err error
		created, err = tx.CreateStaff(staff)
		return err
	})
	return created, res, err
}

// UpdateStaff mutates a staff member.
func (s *Service) UpdateStaff(ctx context.Context, actor Actor, id string, mutator func(*Staff) error) (Staff, Result, error) {
	var updated Staff
	res, err := s.commit(ctx, "update_staff", actor, func(tx *Transaction) error {
		var err error
		updated, err = tx.UpdateStaff(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteStaff removes a staff member.
func (s *Service) DeleteStaff(ctx context.Context, actor Actor, id, reason string) (Result, error) {
	res, err := s.commit(ctx, "delete_staff", actor, func(tx *Transaction) error {
		return tx.DeleteStaff(id)
	})
	if err == nil && reason != "" {
		s.emitter.LogActivity(fmt.Sprintf("Removal reason for %s: %s", id, reason), moduleName(EntityStaff), actor.Name, "trash")
	}
	return res, err
}

// CreateDepartment registers a new department.
func (s *Service) CreateDepartment(ctx context.Context, actor Actor, department Department) (Department, Result, error) {
	var created Department
	res, err := s.commit(ctx, "create_department", actor, func(tx *Transaction) error {
		var err error
		created, err = tx.CreateDepartment(department)
		return err
	})
	return created, res, err
}

// UpdateDepartment mutates a department.
func (s *Service) UpdateDepartment(ctx context.Context, actor Actor, id string, mutator func(*Department) error) (Department, Result, error) {
	var updated Department
	res, err := s.commit(ctx, "update_department", actor, func(tx *Transaction) error {
		var err error
		updated, err = tx.UpdateDepartment(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteDepartment removes a department. Staff assigned to it are not
// reassigned; sequencing that cleanup is the caller's responsibility.
func (s *Service) DeleteDepartment(ctx context.Context, actor Actor, id, reason string) (Result, error) {
	res, err := s.commit(ctx, "delete_department", actor, func(tx *Transaction) error {
		return tx.DeleteDepartment(id)
	})
	if err == nil && reason != "" {
		s.emitter.LogActivity(fmt.Sprintf("Removal reason for %s: %s", id, reason), moduleName(EntityDepartment), actor.Name, "trash")
	}
	return res, err
}

// CreateBedCategory registers a new bed inventory category.
func (s *Service) CreateBedCategory(ctx context.Context, actor Actor, category BedCategory) (BedCategory, Result, error) {
	var created BedCategory
	res, err := s.commit(ctx, "create_bed_category", actor, func(tx *Transaction) error {
		var err error
		created, err = tx.CreateBedCategory(category)
		return err
	})
	return created, res, err
}

// UpdateBedCategory mutates a bed category, recomputing availability when
// either capacity input changed.
func (s *Service) UpdateBedCategory(ctx context.Context, actor Actor, id string, mutator func(*BedCategory) error) (BedCategory, Result, error) {
	var updated BedCategory
	res, err := s.commit(ctx, "update_bed_category", actor, func(tx *Transaction) error {
		var err error
		updated, err = tx.UpdateBedCategory(id, mutator)
		return err
	})
	return updated, res, err
}

// DeleteBedCategory removes a bed category.
func (s *Service) DeleteBedCategory(ctx context.Context, actor Actor, id, reason string) (Result, error) {
	res, err := s.commit(ctx, "delete_bed_category", actor, func(tx *Transaction) error {
		return tx.DeleteBedCategory(id)
	})
	if err == nil && reason != "" {
		s.emitter.LogActivity(fmt.Sprintf("Removal reason for %s: %s", id, reason), moduleName(EntityBedCategory), actor.Name, "trash")
	}
	return res, err
}

// Notifications returns the derived notifications, newest first.
func (s *Service) Notifications() []Notification {
	return s.emitter.Notifications()
}

// Activities returns the derived audit trail, newest first.
func (s *Service) Activities() []ActivityEntry {
	return s.emitter.Activities()
}

// MarkNotificationRead marks one notification as read.
func (s *Service) MarkNotificationRead(id string) {
	s.emitter.MarkRead(id)
}

// ClearNotifications drops all notifications.
func (s *Service) ClearNotifications() {
	s.emitter.ClearAll()
}

// DeleteNotification removes one notification.
func (s *Service) DeleteNotification(id string) {
	s.emitter.Delete(id)
}
