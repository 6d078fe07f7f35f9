package model

import (
	"time"

	"github.com/rsahay/tdsbook-backend/pkg/tds"
)

// Deductee is the payee tax is withheld from, keyed by PAN. The registry is
// last-write-wins: every submission overwrites name and category, and the
// document path whenever a new document was uploaded.
type Deductee struct {
	ID           uint                 `gorm:"primarykey" json:"id"`
	PAN          string               `gorm:"type:varchar(20);uniqueIndex;not null" json:"pan"`
	Name         string               `gorm:"not null" json:"name"`
	Category     tds.DeducteeCategory `gorm:"type:varchar(20);not null" json:"category"`
	DocumentPath string               `json:"document_path,omitempty"` // stored identity document, if any
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:DeducteeID" json:"transactions,omitempty"`
}

func (Deductee) TableName() string {
	return "deductees"
}
