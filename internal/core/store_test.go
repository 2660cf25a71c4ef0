package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospitalcore/internal/core"
	"hospitalcore/pkg/domain"
)

var admin = domain.Actor{Name: "Super Admin", Role: "admin"}

func newTestService() (*core.Service, *time.Time) {
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	clock := &now
	svc.Store().SetNowFunc(func() time.Time { return *clock })
	svc.Emitter().SetNowFunc(func() time.Time { return *clock })
	return svc, clock
}

func TestSequentialDisplayIDs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i, want := range []string{"PAT-00001", "PAT-00002", "PAT-00003"} {
		p, _, err := svc.CreatePatient(ctx, admin, domain.Patient{FirstName: "P", LastName: "Doe"})
		if err != nil {
			t.Fatalf("create patient %d: %v", i, err)
		}
		if p.ID != want {
			t.Fatalf("patient %d: want ID %s, got %s", i, want, p.ID)
		}
	}

	// Deleting the newest record does not rewind the counter.
	if _, err := svc.DeletePatient(ctx, admin, "PAT-00003", ""); err != nil {
		t.Fatalf("delete: %v", err)
	}
	p, _, err := svc.CreatePatient(ctx, admin, domain.Patient{FirstName: "Q", LastName: "Doe"})
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if p.ID != "PAT-00004" {
		t.Fatalf("counter reused an ID: got %s", p.ID)
	}

	// Counters are independent per entity type.
	st, _, err := svc.CreateStaff(ctx, admin, domain.Staff{FirstName: "Ada", LastName: "Okoro"})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if st.ID != "STF-00001" {
		t.Fatalf("want STF-00001, got %s", st.ID)
	}
}

func TestUpdateAndDeleteMissingReturnNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.CreatePatient(ctx, admin, domain.Patient{FirstName: "A", LastName: "B"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before := len(svc.Store().ListPatients())

	_, _, err := svc.UpdatePatient(ctx, admin, "PAT-99999", func(p *domain.Patient) error {
		p.Status = domain.PatientStatusAdmitted
		return nil
	})
	var notFound core.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.DeletePatient(ctx, admin, "PAT-99999", ""); !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if got := len(svc.Store().ListPatients()); got != before {
		t.Fatalf("collection length changed on miss: %d -> %d", before, got)
	}
}

func TestBedAvailabilityDerived(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	bed, _, err := svc.CreateBedCategory(ctx, admin, domain.BedCategory{Name: "ICU", TotalBeds: 20, OccupiedBeds: 5, AvailableBeds: 999})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bed.AvailableBeds != 15 {
		t.Fatalf("create should derive availability: want 15, got %d", bed.AvailableBeds)
	}

	bed, _, err = svc.UpdateBedCategory(ctx, admin, bed.ID, func(b *domain.BedCategory) error {
		b.OccupiedBeds = 12
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if bed.AvailableBeds != 8 {
		t.Fatalf("update touching occupancy: want 8, got %d", bed.AvailableBeds)
	}

	// An update that touches neither input keeps the derived value, even if
	// the mutator tries to write it directly.
	bed, _, err = svc.UpdateBedCategory(ctx, admin, bed.ID, func(b *domain.BedCategory) error {
		b.Name = "ICU East"
		b.AvailableBeds = -3
		return nil
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if bed.AvailableBeds != 8 {
		t.Fatalf("derived value should survive unrelated updates: got %d", bed.AvailableBeds)
	}
}

func TestPatientDerivedFields(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	p, _, err := svc.CreatePatient(ctx, admin, domain.Patient{FirstName: "Jane", LastName: "Doe", DateOfBirth: dob})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.FullName != "Jane Doe" {
		t.Fatalf("full name: got %q", p.FullName)
	}
	if p.Age != 35 {
		t.Fatalf("age at 2026-03-02: want 35, got %d", p.Age)
	}

	p, _, err = svc.UpdatePatient(ctx, admin, p.ID, func(pt *domain.Patient) error {
		pt.LastName = "Doe-Smith"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.FullName != "Jane Doe-Smith" {
		t.Fatalf("full name not recomputed: %q", p.FullName)
	}

	// Age tracks the clock once the birthday passes.
	*clock = time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)
	p, _, err = svc.UpdatePatient(ctx, admin, p.ID, func(pt *domain.Patient) error {
		pt.Phone = "555-0100"
		return nil
	})
	if err != nil {
		t.Fatalf("update after birthday: %v", err)
	}
	if p.Age != 36 {
		t.Fatalf("age after birthday: want 36, got %d", p.Age)
	}
}

func TestStaffFullNameIncludesMiddle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	middle := "Kelechi"
	st, _, err := svc.CreateStaff(ctx, admin, domain.Staff{FirstName: "Ada", MiddleName: &middle, LastName: "Okoro", Role: "Nurse"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.FullName != "Ada Kelechi Okoro" {
		t.Fatalf("full name: %q", st.FullName)
	}

	st, _, err = svc.UpdateStaff(ctx, admin, st.ID, func(s *domain.Staff) error {
		s.MiddleName = nil
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if st.FullName != "Ada Okoro" {
		t.Fatalf("middle removal not reflected: %q", st.FullName)
	}
}

func TestInvoiceDateCreatedImmutable(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	inv, _, err := svc.CreateInvoice(ctx, admin, domain.Invoice{PatientName: "Jane Doe", Amount: 120})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created := inv.DateCreated

	*clock = clock.Add(48 * time.Hour)
	inv, _, err = svc.UpdateInvoice(ctx, admin, inv.ID, func(i *domain.Invoice) error {
		i.PaymentStatus = domain.PaymentStatusPaid
		i.DateCreated = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !inv.DateCreated.Equal(created) {
		t.Fatalf("DateCreated rewritten: %v -> %v", created, inv.DateCreated)
	}
	if !inv.UpdatedAt.After(created) {
		t.Fatalf("UpdatedAt not bumped: %v", inv.UpdatedAt)
	}
}

func TestDepartmentUpdatedAtBumpedEveryMutation(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	dep, _, err := svc.CreateDepartment(ctx, admin, domain.Department{Name: "Cardiology", Status: domain.DepartmentStatusActive})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first := dep.UpdatedAt

	*clock = clock.Add(time.Hour)
	dep, _, err = svc.UpdateDepartment(ctx, admin, dep.ID, func(d *domain.Department) error {
		d.StaffCount = 14
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !dep.UpdatedAt.After(first) {
		t.Fatalf("UpdatedAt not bumped: %v vs %v", dep.UpdatedAt, first)
	}
}

func TestAppointmentDenormalizesPatientName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _, err := svc.CreatePatient(ctx, admin, domain.Patient{FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	appt, res, err := svc.CreateAppointment(ctx, admin, domain.Appointment{PatientID: p.ID, DoctorName: "Dr. Ray"})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if appt.PatientName != "Jane Doe" {
		t.Fatalf("patient name not denormalized: %q", appt.PatientName)
	}
	if appt.Status != domain.AppointmentStatusScheduled {
		t.Fatalf("default status: %s", appt.Status)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("unexpected violations: %+v", res.Violations)
	}

	// Renaming the patient afterwards does not rewrite the booking.
	if _, _, err := svc.UpdatePatient(ctx, admin, p.ID, func(pt *domain.Patient) error {
		pt.LastName = "Smith"
		return nil
	}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ := svc.Store().GetAppointment(appt.ID)
	if got.PatientName != "Jane Doe" {
		t.Fatalf("denormalized name should stay stale, got %q", got.PatientName)
	}
}

func TestDeleteDepartmentLeavesStaffStale(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	dep, _, err := svc.CreateDepartment(ctx, admin, domain.Department{Name: "Radiology"})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	st, _, err := svc.CreateStaff(ctx, admin, domain.Staff{FirstName: "Ben", LastName: "Adeyemi", Department: dep.Name})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}

	if _, err := svc.DeleteDepartment(ctx, admin, dep.ID, "restructuring"); err != nil {
		t.Fatalf("delete department: %v", err)
	}
	got, ok := svc.Store().GetStaff(st.ID)
	if !ok {
		t.Fatal("staff should survive department deletion")
	}
	if got.Department != "Radiology" {
		t.Fatalf("staff department should stay stale, got %q", got.Department)
	}
}
