// Package server assembles the ledger services and the HTTP router on top of
// a database handle.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"ledgerbook/internal/config"
	"ledgerbook/internal/handlers"
	"ledgerbook/internal/middleware"
	"ledgerbook/internal/repository"
	"ledgerbook/internal/services"

	_ "ledgerbook/internal/docs" // swagger docs
)

// Services are the ledger services shared by the API and the CLI.
type Services struct {
	Journal    services.JournalServicer
	Master     services.MasterServicer
	Adjustment services.AdjustmentServicer
	Reports    handlers.ReportServices
}

// NewServices builds every service over db. A cash book without a target
// account is a configuration error.
func NewServices(db *gorm.DB, cfg *config.Config, now func() time.Time) (*Services, error) {
	if now == nil {
		now = time.Now
	}
	repo := repository.NewLedgerRepository(db)

	cashBooks, err := services.NewCashBooks(repo, cfg.CashBookAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cash books: %w", err)
	}

	return &Services{
		Journal: services.NewJournalService(db),
		Master:  services.NewMasterService(db),
		Adjustment: services.NewAdjustmentService(repo, services.AdjustmentConfig{
			ReceivableAccounts: cfg.ReceivableAccounts,
			AllowanceAccount:   cfg.AllowanceAccount,
			AllowanceRate:      cfg.AllowanceRate,
		}),
		Reports: handlers.ReportServices{
			GeneralLedger: services.NewGeneralLedgerService(repo),
			CashBooks:     cashBooks,
			Balances:      services.NewBalanceService(repo),
			Statements:    services.NewStatementService(repo, cfg.FiscalStartMonth),
			Dashboard:     services.NewDashboardService(repo, now),
			PurchaseBook: services.NewPurchaseBookService(repo, services.PurchaseBookConfig{
				PurchaseAccount: cfg.PurchaseAccount,
				PayableAccount:  cfg.PayableAccount,
				CashAccount:     cfg.CashAccount,
			}),
		},
	}, nil
}

// NewRouter registers the health check, swagger docs and the protected
// /api/v1 routes.
func NewRouter(svc *Services, cfg *config.Config, now func() time.Time) *gin.Engine {
	journalHandler := handlers.NewJournalHandler(svc.Journal)
	masterHandler := handlers.NewMasterHandler(svc.Master)
	adjustmentHandler := handlers.NewAdjustmentHandler(svc.Adjustment)
	reportHandler := handlers.NewReportHandler(svc.Reports, cfg.FiscalStartMonth, now)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret), cfg.AuthDisabled))

	// Master data
	accounts := v1.Group("/accounts")
	accounts.GET("", masterHandler.ListAccounts)
	accounts.POST("", masterHandler.CreateAccount)
	accounts.PUT("/:id", masterHandler.UpdateAccount)

	companies := v1.Group("/companies")
	companies.GET("", masterHandler.ListCompanies)
	companies.POST("", masterHandler.CreateCompany)

	periods := v1.Group("/fiscal-periods")
	periods.GET("", masterHandler.ListFiscalPeriods)
	periods.POST("", masterHandler.CreateFiscalPeriod)
	periods.PUT("/:id", masterHandler.UpdateFiscalPeriod)

	v1.PUT("/initial-balances", masterHandler.SetInitialBalance)
	v1.GET("/fixed-assets", masterHandler.ListFixedAssets)

	// Postings
	entries := v1.Group("/journal-entries")
	entries.GET("", journalHandler.ListJournalEntries)
	entries.POST("", journalHandler.CreateJournalEntry)
	entries.GET("/:id", journalHandler.GetJournalEntry)
	entries.PUT("/:id", journalHandler.UpdateJournalEntry)
	entries.DELETE("/:id", journalHandler.DeleteJournalEntry)

	v1.POST("/adjustment-entries", journalHandler.CreateAdjustmentEntry)

	adjustments := v1.Group("/adjustments")
	adjustments.GET("/:period_id", adjustmentHandler.GetAdjustmentInfo)
	adjustments.POST("/:period_id/depreciation", adjustmentHandler.RecordDepreciation)

	// Reports
	reports := v1.Group("/reports")
	reports.GET("/general-ledger", reportHandler.GetGeneralLedger)
	reports.GET("/cashbooks", reportHandler.ListCashBooks)
	reports.GET("/cashbooks/:book", reportHandler.GetCashBook)
	reports.GET("/account-totals", reportHandler.GetAccountTotals)
	reports.GET("/trial-balance", reportHandler.GetTrialBalance)
	reports.GET("/balance-sheet", reportHandler.GetBalanceSheet)
	reports.GET("/profit-and-loss", reportHandler.GetProfitAndLoss)
	reports.GET("/dashboard", reportHandler.GetDashboard)
	reports.GET("/purchase-book", reportHandler.GetPurchaseBook)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
