package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rsahay/tdsbook-backend/internal/app/repository"
	apperrors "github.com/rsahay/tdsbook-backend/internal/errors"
	"github.com/rsahay/tdsbook-backend/internal/middleware"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
	"gorm.io/gorm"
)

type DeducteeController struct {
	deducteeRepo repository.DeducteeRepository
}

func NewDeducteeController(deducteeRepo repository.DeducteeRepository) *DeducteeController {
	return &DeducteeController{
		deducteeRepo: deducteeRepo,
	}
}

// List returns the registry, optionally filtered by ?pan=
// GET /api/v1/deductees
func (ctrl *DeducteeController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if pan := c.Query("pan"); pan != "" {
		deductee, err := ctrl.deducteeRepo.FindByPAN(tds.NormalizePAN(pan))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.NotFound(c, apperrors.DeducteeNotFound, "No deductee with this PAN")
				return
			}
			log.Error("Failed to look up deductee by PAN", err)
			apperrors.InternalError(c, "Failed to fetch deductee")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"deductees": []interface{}{deductee},
			"count":     1,
		})
		return
	}

	deductees, err := ctrl.deducteeRepo.FindAll()
	if err != nil {
		log.Error("Failed to list deductees", err)
		apperrors.InternalError(c, "Failed to fetch deductees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deductees": deductees,
		"count":     len(deductees),
	})
}

// GetByID returns one deductee
// GET /api/v1/deductees/:id
func (ctrl *DeducteeController) GetByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid deductee ID")
		return
	}

	deductee, err := ctrl.deducteeRepo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.DeducteeNotFound, "Deductee not found")
			return
		}
		log.Error("Failed to fetch deductee", err, map[string]interface{}{
			"deductee_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch deductee")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deductee": deductee,
	})
}
