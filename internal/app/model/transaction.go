package model

import (
	"time"

	"github.com/rsahay/tdsbook-backend/pkg/tds"
)

// Transaction is one taxable payment event. Rows are immutable after
// creation except for ChallanID, which moves from NULL to a challan exactly
// once during reconciliation; nothing is ever deleted.
type Transaction struct {
	ID               uint        `gorm:"primarykey" json:"id"`
	DeducteeID       uint        `gorm:"not null;index" json:"deductee_id"`
	Section          tds.Section `gorm:"type:varchar(20);not null" json:"section"`
	InvoiceDate      time.Time   `gorm:"not null;index" json:"invoice_date"`
	InvoiceAmount    float64     `gorm:"not null" json:"invoice_amount"`
	AssessableAmount float64     `gorm:"not null" json:"assessable_amount"`
	Rate             float64     `gorm:"not null" json:"rate"`
	Tax              float64     `gorm:"not null" json:"tax"`
	Surcharge        float64     `gorm:"not null;default:0" json:"surcharge"` // reserved, always 0 today
	Cess             float64     `gorm:"not null" json:"cess"`
	Interest         float64     `gorm:"not null;default:0" json:"interest"` // reserved, always 0 today
	TotalTDS         float64     `gorm:"not null" json:"total_tds"`          // tax + surcharge + cess + interest, fixed at creation
	PaymentMode      string      `gorm:"type:varchar(50)" json:"payment_mode,omitempty"`
	PaymentRef       string      `gorm:"type:varchar(100)" json:"payment_ref,omitempty"`
	ChallanID        *uint       `gorm:"index" json:"challan_id,omitempty"` // NULL until reconciled
	CreatedAt        time.Time   `json:"created_at"`

	Deductee Deductee `gorm:"foreignKey:DeducteeID" json:"deductee,omitempty"`
	Challan  *Challan `gorm:"foreignKey:ChallanID" json:"challan,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Reconciled reports whether the transaction has been settled by a challan.
func (t *Transaction) Reconciled() bool {
	return t.ChallanID != nil
}
