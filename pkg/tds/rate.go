// Package tds implements the withholding rules: the section rate table and
// the tax/cess computation applied to every recorded transaction.
package tds

import "strings"

// DeducteeCategory is the statutory category of the payee.
type DeducteeCategory string

// Section is the statutory payment section code that selects the rate.
type Section string

const (
	CategoryIndividual DeducteeCategory = "individual"
	CategoryHUF        DeducteeCategory = "huf"
	CategoryCompany    DeducteeCategory = "company"
	CategoryFirm       DeducteeCategory = "firm"
	CategoryOther      DeducteeCategory = "other"

	SectionContract         Section = "194C"    // contract payments
	SectionCommission       Section = "194H"    // commission / brokerage
	SectionProfessionalFees Section = "194J"    // professional or technical fees
	SectionRentPlantMachine Section = "194I(a)" // rent: plant & machinery
	SectionRentLandBuilding Section = "194I(b)" // rent: land & building
)

// PANLength is the expected length of a PAN. Anything else is treated as an
// invalid identifier and attracts the penal rate.
const PANLength = 10

// PenalRate applies whenever the PAN is missing or malformed.
const PenalRate = 20.0

// rateRule maps a section to its percentage. ByCategory overrides Flat for
// the listed categories; sections not in the table carry no withholding.
type rateRule struct {
	Flat       float64
	ByCategory map[DeducteeCategory]float64
}

var rateRules = map[Section]rateRule{
	SectionContract: {
		Flat: 2.0,
		ByCategory: map[DeducteeCategory]float64{
			CategoryIndividual: 1.0,
			CategoryHUF:        1.0,
		},
	},
	SectionCommission:       {Flat: 5.0},
	SectionProfessionalFees: {Flat: 10.0},
	SectionRentPlantMachine: {Flat: 2.0},
	SectionRentLandBuilding: {Flat: 10.0},
}

// NormalizePAN uppercases and trims a PAN before lookup or storage.
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}

// ValidPAN reports whether the normalized PAN has the expected length.
func ValidPAN(pan string) bool {
	return len(NormalizePAN(pan)) == PANLength
}

// RateFor returns the applicable TDS percentage for a payment.
//
// A malformed PAN wins over everything else: the statute prescribes the
// penal rate for missing or invalid identifiers regardless of section.
// An unrecognized section means no withholding applies (0%), which is a
// policy fallback, not an error. The result is stable for a given input;
// stored rates are never recomputed.
func RateFor(pan string, category DeducteeCategory, section Section) float64 {
	if !ValidPAN(pan) {
		return PenalRate
	}

	rule, ok := rateRules[section]
	if !ok {
		return 0.0
	}
	if rate, ok := rule.ByCategory[category]; ok {
		return rate
	}
	return rule.Flat
}

// KnownCategories lists the accepted deductee categories, in display order.
func KnownCategories() []DeducteeCategory {
	return []DeducteeCategory{
		CategoryIndividual,
		CategoryHUF,
		CategoryCompany,
		CategoryFirm,
		CategoryOther,
	}
}

// IsKnownCategory reports whether the category is one of the accepted values.
func IsKnownCategory(category DeducteeCategory) bool {
	for _, c := range KnownCategories() {
		if c == category {
			return true
		}
	}
	return false
}
