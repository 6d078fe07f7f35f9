package model

import "time"

// Challan is one remittance of withheld tax to the authority for a
// (year, month) period. Created once at reconciliation from the aggregate
// of the then-unlinked transactions, immutable thereafter.
type Challan struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Year           int       `gorm:"not null;index:idx_challans_period" json:"year"`
	Month          int       `gorm:"not null;index:idx_challans_period" json:"month"`
	TotalTax       float64   `gorm:"not null" json:"total_tax"`
	TotalSurcharge float64   `gorm:"not null;default:0" json:"total_surcharge"`
	TotalCess      float64   `gorm:"not null" json:"total_cess"`
	TotalInterest  float64   `gorm:"not null;default:0" json:"total_interest"`
	TotalPaid      float64   `gorm:"not null" json:"total_paid"`
	ChallanNo      string    `gorm:"type:varchar(50);not null" json:"challan_no"`
	BSRCode        string    `gorm:"type:varchar(20)" json:"bsr_code"` // bank branch code on the receipt
	PaymentDate    time.Time `gorm:"not null" json:"payment_date"`
	CreatedAt      time.Time `json:"created_at"`

	Transactions []Transaction `gorm:"foreignKey:ChallanID" json:"transactions,omitempty"`
}

func (Challan) TableName() string {
	return "challans"
}
