package repository

import (
	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
	"gorm.io/gorm"
)

type DeducteeRepository interface {
	FindByID(id uint) (*model.Deductee, error)
	FindByPAN(pan string) (*model.Deductee, error)
	FindAll() ([]model.Deductee, error)
}

type deducteeRepository struct {
	db *gorm.DB
}

func NewDeducteeRepository(db *gorm.DB) DeducteeRepository {
	return &deducteeRepository{db: db}
}

func (r *deducteeRepository) FindByID(id uint) (*model.Deductee, error) {
	var deductee model.Deductee
	if err := r.db.First(&deductee, id).Error; err != nil {
		logger.Error("Failed to find deductee by ID in database", err, map[string]interface{}{
			"deductee_id": id,
		})
		return nil, err
	}
	return &deductee, nil
}

func (r *deducteeRepository) FindByPAN(pan string) (*model.Deductee, error) {
	var deductee model.Deductee
	if err := r.db.Where("pan = ?", pan).First(&deductee).Error; err != nil {
		logger.Error("Failed to find deductee by PAN in database", err, map[string]interface{}{
			"pan": pan,
		})
		return nil, err
	}
	return &deductee, nil
}

func (r *deducteeRepository) FindAll() ([]model.Deductee, error) {
	var deductees []model.Deductee
	if err := r.db.Order("name ASC").Find(&deductees).Error; err != nil {
		logger.Error("Failed to list deductees in database", err)
		return nil, err
	}

	logger.Debug("Deductees listed from database", map[string]interface{}{
		"count": len(deductees),
	})
	return deductees, nil
}
