package tds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateFor_MalformedPAN(t *testing.T) {
	tests := []struct {
		name string
		pan  string
	}{
		{"empty", ""},
		{"too short", "BAD"},
		{"too long", "AAAAA0000AX"},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Penal rate wins over every category/section combination.
			for _, category := range KnownCategories() {
				assert.Equal(t, PenalRate, RateFor(tt.pan, category, SectionContract))
				assert.Equal(t, PenalRate, RateFor(tt.pan, category, SectionProfessionalFees))
				assert.Equal(t, PenalRate, RateFor(tt.pan, category, Section("unknown")))
			}
		})
	}
}

func TestRateFor_ContractByCategory(t *testing.T) {
	pan := "AAAAA0000A"

	assert.Equal(t, 1.0, RateFor(pan, CategoryIndividual, SectionContract))
	assert.Equal(t, 1.0, RateFor(pan, CategoryHUF, SectionContract))
	assert.Equal(t, 2.0, RateFor(pan, CategoryCompany, SectionContract))
	assert.Equal(t, 2.0, RateFor(pan, CategoryFirm, SectionContract))
	assert.Equal(t, 2.0, RateFor(pan, CategoryOther, SectionContract))
}

func TestRateFor_FlatSections(t *testing.T) {
	pan := "AAAAA0000A"

	tests := []struct {
		section Section
		rate    float64
	}{
		{SectionCommission, 5.0},
		{SectionProfessionalFees, 10.0},
		{SectionRentPlantMachine, 2.0},
		{SectionRentLandBuilding, 10.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.section), func(t *testing.T) {
			// Flat sections ignore the category.
			for _, category := range KnownCategories() {
				assert.Equal(t, tt.rate, RateFor(pan, category, tt.section))
			}
		})
	}
}

func TestRateFor_UnknownSectionFallsBackToZero(t *testing.T) {
	// An unmapped section is "no withholding applies", not an error.
	assert.Equal(t, 0.0, RateFor("AAAAA0000A", CategoryCompany, Section("192")))
	assert.Equal(t, 0.0, RateFor("AAAAA0000A", CategoryIndividual, Section("")))
}

func TestRateFor_NormalizesPAN(t *testing.T) {
	assert.Equal(t, 1.0, RateFor("aaaaa0000a", CategoryIndividual, SectionContract))
	assert.Equal(t, 5.0, RateFor("  AAAAA0000A  ", CategoryFirm, SectionCommission))
}

func TestNormalizePAN(t *testing.T) {
	assert.Equal(t, "AAAAA0000A", NormalizePAN(" aaaaa0000a "))
	assert.True(t, ValidPAN("aaaaa0000a"))
	assert.False(t, ValidPAN("BAD"))
}

func TestCompute_RoundsUp(t *testing.T) {
	tests := []struct {
		name       string
		assessable float64
		rate       float64
		tax        float64
		cess       float64
		total      float64
	}{
		{"exact contract", 10000, 1.0, 100, 4, 104},
		{"penal rate", 5000, 20.0, 1000, 40, 1040},
		{"fractional tax rounds up", 10050, 1.0, 101, 5, 106},
		{"tiny amount still ceils", 1, 1.0, 1, 1, 2},
		{"zero rate", 10000, 0.0, 0, 0, 0},
		{"zero amount", 0, 10.0, 0, 0, 0},
		{"professional fees", 33333, 10.0, 3334, 134, 3468},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compute(tt.assessable, tt.rate)
			assert.Equal(t, tt.tax, b.Tax)
			assert.Equal(t, 0.0, b.Surcharge)
			assert.Equal(t, tt.cess, b.Cess)
			assert.Equal(t, tt.total, b.Total)
			assert.Equal(t, tt.rate, b.Rate)
		})
	}
}

func TestCompute_TaxIsWholeAndAtLeastExact(t *testing.T) {
	for _, assessable := range []float64{1, 99, 1234.56, 99999} {
		for _, rate := range []float64{1, 2, 5, 10, 20} {
			b := Compute(assessable, rate)
			exact := assessable * rate / 100
			assert.GreaterOrEqual(t, b.Tax, exact)
			assert.Less(t, b.Tax-exact, 1.0)
			assert.Equal(t, b.Tax, float64(int64(b.Tax)))
			assert.GreaterOrEqual(t, b.Cess, b.Tax*CessRate)
		}
	}
}
