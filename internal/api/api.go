// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/omarembaby39-afk/UMQASR-RO/internal/api/handlers"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/api/middleware"
	"github.com/omarembaby39-afk/UMQASR-RO/internal/service"
)

type Services struct {
	Readings     *service.ReadingService
	Cartridges   *service.CartridgeService
	Chemicals    *service.ChemicalService
	Production   *service.ProductionService
	Maintenance  *service.MaintenanceService
	Todos        *service.TodoService
	WaterQuality *service.WaterQualityService
	Dashboard    *service.DashboardService
	Reports      *service.ReportService

	// ScheduleDaysAhead is the default generation window of work orders and to-dos.
	ScheduleDaysAhead int
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	if services == nil {
		return router
	}

	if services.Dashboard != nil {
		dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
		apiGroup.GET("/dashboard", dashboardHandler.Get)
	}

	if services.Readings != nil {
		readingHandler := handlers.NewReadingHandler(services.Readings)
		readingGroup := apiGroup.Group("/readings")
		{
			readingGroup.GET("", readingHandler.List)
			readingGroup.POST("", readingHandler.Save)
			readingGroup.GET("/latest", readingHandler.Latest)
			readingGroup.GET("/compliance", readingHandler.Compliance)
			readingGroup.POST("/import", readingHandler.Import)
		}
	}

	if services.Cartridges != nil {
		cartridgeHandler := handlers.NewCartridgeHandler(services.Cartridges)
		cartridgeGroup := apiGroup.Group("/cartridge")
		{
			cartridgeGroup.GET("", cartridgeHandler.List)
			cartridgeGroup.POST("", cartridgeHandler.Record)
			cartridgeGroup.GET("/status", cartridgeHandler.Status)
		}
	}

	if services.Chemicals != nil {
		chemicalHandler := handlers.NewChemicalHandler(services.Chemicals)
		chemicalGroup := apiGroup.Group("/chemicals")
		{
			chemicalGroup.GET("", chemicalHandler.StockCards)
			chemicalGroup.POST("", chemicalHandler.Create)
			chemicalGroup.PUT("/unit-cost", chemicalHandler.UpdateUnitCost)
			chemicalGroup.PUT("/rule", chemicalHandler.UpdateRule)
			chemicalGroup.GET("/movements", chemicalHandler.Movements)
			chemicalGroup.POST("/movements", chemicalHandler.PostMovement)
			chemicalGroup.GET("/ledger", chemicalHandler.Ledger)
			chemicalGroup.POST("/reset-period", chemicalHandler.ResetPeriod)
		}
	}

	if services.Production != nil {
		productionHandler := handlers.NewProductionHandler(services.Production)
		apiGroup.GET("/flowmeter", productionHandler.Flowmeter)
		apiGroup.POST("/flowmeter", productionHandler.RecordFlowmeter)
		productionGroup := apiGroup.Group("/production")
		{
			productionGroup.GET("", productionHandler.List)
			productionGroup.POST("/rebuild", productionHandler.Rebuild)
		}
	}

	if services.Maintenance != nil {
		maintenanceHandler := handlers.NewMaintenanceHandler(services.Maintenance, services.ScheduleDaysAhead)
		maintenanceGroup := apiGroup.Group("/maintenance")
		{
			maintenanceGroup.GET("/tasks", maintenanceHandler.Tasks)
			maintenanceGroup.POST("/tasks/seed", maintenanceHandler.SeedCatalog)
			maintenanceGroup.POST("/schedule", maintenanceHandler.GenerateSchedule)
			maintenanceGroup.GET("/workorders", maintenanceHandler.WorkOrders)
			maintenanceGroup.PUT("/workorders/:id", maintenanceHandler.UpdateWorkOrder)
		}
	}

	if services.Todos != nil {
		todoHandler := handlers.NewTodoHandler(services.Todos, services.ScheduleDaysAhead)
		todoGroup := apiGroup.Group("/todos")
		{
			todoGroup.GET("", todoHandler.List)
			todoGroup.PUT("/:id", todoHandler.UpdateStatus)
			todoGroup.GET("/tasks", todoHandler.Tasks)
			todoGroup.POST("/tasks", todoHandler.CreateTask)
			todoGroup.POST("/tasks/seed", todoHandler.Seed)
			todoGroup.POST("/generate", todoHandler.Generate)
		}
	}

	if services.WaterQuality != nil {
		waterQualityHandler := handlers.NewWaterQualityHandler(services.WaterQuality)
		waterQualityGroup := apiGroup.Group("/water-quality")
		{
			waterQualityGroup.GET("", waterQualityHandler.List)
			waterQualityGroup.POST("", waterQualityHandler.Record)
			waterQualityGroup.GET("/summary", waterQualityHandler.Summary)
		}
	}

	if services.Reports != nil {
		reportHandler := handlers.NewReportHandler(services.Reports)
		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("/monthly", reportHandler.Monthly)
			reportGroup.GET("/monthly/export", reportHandler.ExportMonthly)
			reportGroup.POST("/monthly/archive", reportHandler.ArchiveMonthly)
			reportGroup.GET("/archive", reportHandler.Archived)
			reportGroup.GET("/maintenance", reportHandler.Maintenance)
			reportGroup.GET("/maintenance/export", reportHandler.ExportMaintenance)
			reportGroup.GET("/production/export", reportHandler.ExportProduction)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
