package core

import (
	"context"
	"fmt"

	"hospitalcore/pkg/domain"
)

// NewBedCapacityRule returns the in-transaction rule checking bed inventory
// consistency. Occupancy beyond capacity is reported at warn severity; the
// store itself never rejects the write.
func NewBedCapacityRule() Rule {
	return bedCapacityRule{}
}

type bedCapacityRule struct{}

func (bedCapacityRule) Name() string { return "bed_capacity" }

func (bedCapacityRule) Evaluate(_ context.Context, view RuleView, _ []Change) (Result, error) {
	res := Result{}
	for _, bed := range view.ListBedCategories() {
		if bed.OccupiedBeds > bed.TotalBeds {
			res.Violations = append(res.Violations, Violation{
				Rule:     "bed_capacity",
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("bed category %s (%s) over capacity: %d/%d occupied", bed.Name, bed.ID, bed.OccupiedBeds, bed.TotalBeds),
				Entity:   domain.EntityBedCategory,
				EntityID: bed.ID,
			})
		}
	}
	return res, nil
}
