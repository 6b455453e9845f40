// Package charges computes publication charges for a manuscript.
//
// The charge schedule is a pure function of page count: the first six
// pages are free, a manuscript that runs longer pays a flat base charge
// plus a per-page charge for every page past the sixth. Keeping this as
// a standalone pure function makes the schedule trivially testable and
// keeps pricing out of the submission handler.
package charges

import "github.com/dalemusser/scholarhub/internal/domain/models"

const (
	freePages     = 6
	baseOverage   = 50
	perExtraPage  = 10
)

// Compute returns the charge breakdown for a manuscript with the given
// page count. Page counts of zero or less are treated as free.
func Compute(pages int) models.PublicationCharges {
	if pages <= freePages {
		return models.PublicationCharges{}
	}
	extra := pages - freePages
	return models.PublicationCharges{
		BaseAmount:  baseOverage,
		ExtraPages:  extra,
		TotalAmount: baseOverage + extra*perExtraPage,
	}
}
