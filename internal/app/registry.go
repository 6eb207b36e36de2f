package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"go-leave/internal/balance"
	"go-leave/internal/employee"
	"go-leave/internal/evaluation"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/penalty"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func intFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func defaultAllotments() balance.Allotments {
	return balance.Allotments{
		Annual:    intFromEnv("LEAVE_ANNUAL_DAYS", 21),
		Sick:      intFromEnv("LEAVE_SICK_DAYS", 15),
		Emergency: intFromEnv("LEAVE_EMERGENCY_DAYS", 7),
	}
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB, db)
	leaveRepo := leave.NewRepository(gormDB, db)
	evaluationRepo := evaluation.NewRepository(gormDB, db)
	penaltyRepo := penalty.NewRepository(gormDB, db)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	allotments := defaultAllotments()
	leaveCfg := leave.Config{
		AllowNegativeBalance: os.Getenv("LEAVE_ALLOW_NEGATIVE_BALANCE") == "true",
		Allotments:           allotments,
	}

	// --- Services ---
	employeeService := employee.NewService(employeeRepo)
	balanceService := balance.NewService(balanceRepo, allotments)
	leaveService := leave.NewService(db, leaveRepo, balanceRepo, outboxRepo, employeeRepo, leaveCfg)
	evaluationService := evaluation.NewService(db, evaluationRepo, rdb)
	penaltyService := penalty.NewService(db, penaltyRepo)
	reportService := report.NewService(reportRepo, rdb)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	evaluationHandler := evaluation.NewHandler(evaluationService)
	penaltyHandler := penalty.NewHandler(penaltyService)
	reportHandler := report.NewHandler(reportService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		evaluation.RegisterRoutes(api, evaluationHandler, rbacService)
		penalty.RegisterRoutes(api, penaltyHandler, rbacService)
		report.RegisterRoutes(api, reportHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
