package core

import (
	"context"
	"fmt"

	"hospitalcore/pkg/domain"
)

// NewAppointmentReferenceRule returns the rule checking that appointments
// reference an existing patient. Dangling references are reported at warn
// severity; deletes never cascade, so a stale reference is legal but worth
// surfacing.
func NewAppointmentReferenceRule() Rule {
	return appointmentReferenceRule{}
}

type appointmentReferenceRule struct{}

func (appointmentReferenceRule) Name() string { return "appointment_patient_reference" }

func (appointmentReferenceRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	res := Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityAppointment || change.Action == domain.ActionDelete {
			continue
		}
		appt, ok := change.After.(Appointment)
		if !ok {
			continue
		}
		if appt.PatientID == "" {
			continue
		}
		if _, found := view.FindPatient(appt.PatientID); !found {
			res.Violations = append(res.Violations, Violation{
				Rule:     "appointment_patient_reference",
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("appointment %s references unknown patient %s", appt.ID, appt.PatientID),
				Entity:   domain.EntityAppointment,
				EntityID: appt.ID,
			})
		}
	}
	return res, nil
}

// appointmentTransitions enumerates the legal status moves:
// scheduled -> in_progress -> completed, with cancellation allowed from any
// non-terminal state. Completed and cancelled are terminal.
var appointmentTransitions = map[AppointmentStatus]map[AppointmentStatus]struct{}{
	AppointmentStatusScheduled: {
		AppointmentStatusInProgress: {},
		AppointmentStatusCancelled:  {},
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted: {},
		AppointmentStatusCancelled: {},
	},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
}

// NewAppointmentTransitionRule returns the rule flagging status moves that
// skip or reverse the appointment workflow.
func NewAppointmentTransitionRule() Rule {
	return appointmentTransitionRule{}
}

type appointmentTransitionRule struct{}

func (appointmentTransitionRule) Name() string { return "appointment_status_transition" }

func (appointmentTransitionRule) Evaluate(_ context.Context, _ RuleView, changes []Change) (Result, error) {
	res := Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityAppointment || change.Action != domain.ActionUpdate {
			continue
		}
		before, okB := change.Before.(Appointment)
		after, okA := change.After.(Appointment)
		if !okB || !okA || before.Status == after.Status {
			continue
		}
		allowed, known := appointmentTransitions[before.Status]
		if !known {
			continue
		}
		if _, legal := allowed[after.Status]; !legal {
			res.Violations = append(res.Violations, Violation{
				Rule:     "appointment_status_transition",
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("appointment %s moved %s -> %s outside the workflow", after.ID, before.Status, after.Status),
				Entity:   domain.EntityAppointment,
				EntityID: after.ID,
			})
		}
	}
	return res, nil
}
