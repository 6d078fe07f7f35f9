package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/internal/app/repository"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidPeriod           = errors.New("invalid period")
	ErrMissingChallanNo        = errors.New("challan number is required")
	ErrPeriodAlreadyReconciled = errors.New("a challan was already filed for this period")
)

// PeriodSummary is the pending payable for one (year, month).
//
// TotalPayable = tax + cess + interest. Surcharge is tracked on every
// transaction but excluded from the payable here, matching the filing
// rules as entered; it is always zero under the current rate set.
// TODO: confirm with the accountants whether surcharge should join the
// payable once a nonzero surcharge rule exists.
type PeriodSummary struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	TotalTax      float64 `json:"total_tax"`
	TotalCess     float64 `json:"total_cess"`
	TotalInterest float64 `json:"total_interest"`
	TotalPayable  float64 `json:"total_payable"`
}

// ReconcileInput is the receipt metadata for one remittance.
type ReconcileInput struct {
	Year        int
	Month       int
	ChallanNo   string
	BSRCode     string
	PaymentDate time.Time
}

type ChallanService interface {
	PendingSummary(year, month int) (PeriodSummary, error)
	PendingPeriods() ([]PeriodSummary, error)
	Reconcile(input ReconcileInput) (*model.Challan, error)
	ListChallans() ([]model.Challan, error)
}

type challanService struct {
	challanRepo     repository.ChallanRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
}

func NewChallanService(
	challanRepo repository.ChallanRepository,
	transactionRepo repository.TransactionRepository,
	db *gorm.DB,
) ChallanService {
	return &challanService{
		challanRepo:     challanRepo,
		transactionRepo: transactionRepo,
		db:              db,
	}
}

func validPeriod(year, month int) bool {
	return year > 0 && month >= 1 && month <= 12
}

// PendingSummary sums the unlinked transactions of one calendar month.
// An empty period is a valid all-zero summary, not an error.
func (s *challanService) PendingSummary(year, month int) (PeriodSummary, error) {
	if !validPeriod(year, month) {
		return PeriodSummary{}, ErrInvalidPeriod
	}

	totals, err := s.transactionRepo.SumPending(year, month)
	if err != nil {
		return PeriodSummary{}, err
	}
	return summaryFromTotals(year, month, totals), nil
}

func summaryFromTotals(year, month int, totals repository.PendingTotals) PeriodSummary {
	return PeriodSummary{
		Year:          year,
		Month:         month,
		TotalTax:      totals.TotalTax,
		TotalCess:     totals.TotalCess,
		TotalInterest: totals.TotalInterest,
		TotalPayable:  totals.TotalTax + totals.TotalCess + totals.TotalInterest,
	}
}

// PendingPeriods groups every unlinked transaction by invoice month and
// returns the aggregates chronologically, oldest period first.
func (s *challanService) PendingPeriods() ([]PeriodSummary, error) {
	transactions, err := s.transactionRepo.FindUnlinked()
	if err != nil {
		return nil, err
	}

	type period struct{ year, month int }
	byPeriod := make(map[period]*PeriodSummary)
	for _, t := range transactions {
		p := period{t.InvoiceDate.Year(), int(t.InvoiceDate.Month())}
		summary, ok := byPeriod[p]
		if !ok {
			summary = &PeriodSummary{Year: p.year, Month: p.month}
			byPeriod[p] = summary
		}
		summary.TotalTax += t.Tax
		summary.TotalCess += t.Cess
		summary.TotalInterest += t.Interest
	}

	summaries := make([]PeriodSummary, 0, len(byPeriod))
	for _, summary := range byPeriod {
		summary.TotalPayable = summary.TotalTax + summary.TotalCess + summary.TotalInterest
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		return summaries[i].Month < summaries[j].Month
	})

	logger.Debug("Pending periods computed", map[string]interface{}{
		"transactions": len(transactions),
		"periods":      len(summaries),
	})
	return summaries, nil
}

// Reconcile files a challan for a period and settles its transactions, as
// one unit of work: aggregate the pending amounts, persist the challan with
// the receipt metadata, then re-read the still-unlinked rows and stamp each
// with the new challan. Either everything commits or nothing does.
//
// A period that already has a challan is rejected outright; re-filing would
// only produce a zero-totals duplicate.
func (s *challanService) Reconcile(input ReconcileInput) (*model.Challan, error) {
	if !validPeriod(input.Year, input.Month) {
		return nil, ErrInvalidPeriod
	}
	if strings.TrimSpace(input.ChallanNo) == "" {
		return nil, ErrMissingChallanNo
	}

	logger.Info("Reconciling period", map[string]interface{}{
		"year":       input.Year,
		"month":      input.Month,
		"challan_no": input.ChallanNo,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during reconciliation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"year":  input.Year,
				"month": input.Month,
			})
		}
	}()

	exists, err := repository.ChallanExistsTx(tx, input.Year, input.Month)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if exists {
		tx.Rollback()
		logger.Warn("Period already reconciled", map[string]interface{}{
			"year":  input.Year,
			"month": input.Month,
		})
		return nil, ErrPeriodAlreadyReconciled
	}

	totals, err := repository.SumPendingTx(tx, input.Year, input.Month)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	challan := model.Challan{
		Year:           input.Year,
		Month:          input.Month,
		TotalTax:       totals.TotalTax,
		TotalSurcharge: 0,
		TotalCess:      totals.TotalCess,
		TotalInterest:  totals.TotalInterest,
		TotalPaid:      totals.TotalTax + totals.TotalCess + totals.TotalInterest,
		ChallanNo:      strings.TrimSpace(input.ChallanNo),
		BSRCode:        strings.TrimSpace(input.BSRCode),
		PaymentDate:    input.PaymentDate,
	}
	if err := tx.Create(&challan).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create challan", err, map[string]interface{}{
			"year":  input.Year,
			"month": input.Month,
		})
		return nil, err
	}

	// Re-read the rows rather than trusting the aggregate snapshot, and
	// link them one by one.
	start, end := repository.PeriodRange(input.Year, input.Month)
	var pending []model.Transaction
	if err := tx.Where("challan_id IS NULL AND invoice_date >= ? AND invoice_date < ?", start, end).
		Find(&pending).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for i := range pending {
		if err := tx.Model(&pending[i]).Update("challan_id", challan.ID).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to link transaction to challan", err, map[string]interface{}{
				"transaction_id": pending[i].ID,
				"challan_id":     challan.ID,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit reconciliation", err, map[string]interface{}{
			"year":  input.Year,
			"month": input.Month,
		})
		return nil, err
	}

	logger.Info("Period reconciled", map[string]interface{}{
		"challan_id":   challan.ID,
		"year":         input.Year,
		"month":        input.Month,
		"total_paid":   challan.TotalPaid,
		"transactions": len(pending),
	})
	return &challan, nil
}

func (s *challanService) ListChallans() ([]model.Challan, error) {
	return s.challanRepo.FindAll()
}
