package app

import (
	"database/sql"

	"ess-api/internal/auth"
	"ess-api/internal/bootstrap"
	"ess-api/internal/employee"
	"ess-api/internal/leave"
	"ess-api/internal/media"
	"ess-api/internal/messaging/kafka"
	"ess-api/internal/middleware"
	"ess-api/internal/payslip"
	"ess-api/internal/shared/apperror"
	"ess-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	storage media.Storage,
	auditLogger bootstrap.AuditLogger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	authService := auth.NewService(authRepo, employeeService, auditLogger)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo, rdb)
	mediaService := media.NewService(storage, employeeService)
	payslipService := payslip.NewService(employeeRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService, rdb)
	mediaHandler := media.NewHandler(mediaService)
	payslipHandler := payslip.NewHandler(payslipService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, middleware.Idempotency(rdb))
		media.RegisterRoutes(api, mediaHandler)
		payslip.RegisterRoutes(api, payslipHandler)
	}

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		e := apperror.ErrMethodNotAllowed
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
	})
	router.NoRoute(func(c *gin.Context) {
		e := apperror.ErrNotFound
		response.Error(c, e.HTTPStatus, e.Code, e.Message)
	})

	return nil
}
