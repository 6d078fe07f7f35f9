package tds

import "math"

// CessRate is the health & education cess levied on the base tax.
const CessRate = 0.04

// Breakup is the withholding computed for one transaction. All amounts are
// whole currency units; Total = Tax + Surcharge + Cess. Interest accrues
// outside the calculator (late-payment interest is a remittance concern,
// not a deduction-time one) and is always zero at creation.
type Breakup struct {
	Rate      float64
	Tax       float64
	Surcharge float64
	Cess      float64
	Total     float64
}

// Compute applies a rate to the assessable amount.
//
// Both tax and cess round UP to the next whole unit: the authority rounds
// in its own favour, so ceil is the required policy here, not an artifact
// of floating point. The caller guarantees a non-negative amount.
func Compute(assessable, rate float64) Breakup {
	tax := math.Ceil(assessable * rate / 100)
	cess := math.Ceil(tax * CessRate)

	// Surcharge is carried for future high-income rules but is always
	// zero under the current rule set.
	return Breakup{
		Rate:      rate,
		Tax:       tax,
		Surcharge: 0,
		Cess:      cess,
		Total:     tax + 0 + cess,
	}
}
