package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rsahay/tdsbook-backend/config"
	"github.com/rsahay/tdsbook-backend/internal/app/controller"
	"github.com/rsahay/tdsbook-backend/internal/middleware"
)

type Router struct {
	transactionController *controller.TransactionController
	deducteeController    *controller.DeducteeController
	challanController     *controller.ChallanController
	exportController      *controller.ExportController
	config                *config.Config
}

func NewRouter(
	transactionController *controller.TransactionController,
	deducteeController *controller.DeducteeController,
	challanController *controller.ChallanController,
	exportController *controller.ExportController,
	cfg *config.Config,
) *Router {
	return &Router{
		transactionController: transactionController,
		deducteeController:    deducteeController,
		challanController:     challanController,
		exportController:      exportController,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TDSBOOK API is running",
		})
	})

	// Serve stored documents for the local upload driver
	router.Static("/uploads", r.config.Upload.Dir)

	v1 := router.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
		}

		// Simplified client-facing submission with document upload
		v1.POST("/client/transactions", r.transactionController.ClientSubmit)

		deductees := v1.Group("/deductees")
		{
			deductees.GET("", r.deducteeController.List)
			deductees.GET("/:id", r.deducteeController.GetByID)
		}

		challans := v1.Group("/challans")
		{
			challans.GET("", r.challanController.List)
			challans.POST("", r.challanController.Reconcile)
			challans.GET("/pending", r.challanController.PendingPeriods)
			challans.GET("/pending/:year/:month", r.challanController.PendingSummary)
		}

		export := v1.Group("/export")
		{
			export.GET("/csv", r.exportController.ExportCSV)
			export.GET("/xlsx", r.exportController.ExportXLSX)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, allowed := range allowedOrigins {
			if origin == allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
