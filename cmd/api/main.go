package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "report-approval-service/internal/adapter/http"
	appmw "report-approval-service/internal/adapter/middleware"
	"report-approval-service/internal/adapter/notifier"
	"report-approval-service/internal/adapter/repository/mysql"
	"report-approval-service/internal/config"
	"report-approval-service/internal/domain/audit"
	reportDomain "report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/user"
	"report-approval-service/internal/infrastructure/cache"
	"report-approval-service/internal/infrastructure/db"
	reportUC "report-approval-service/internal/usecase/report"
	"report-approval-service/internal/usecase/transition"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	if err := gdb.AutoMigrate(&reportDomain.Report{}, &audit.Entry{}, &user.User{}); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("open redis", zap.Error(err))
	}

	reports := mysql.NewReportRepository(gdb)
	audits := mysql.NewAuditRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	enq := notifier.NewRedisEnqueuer(rdb)

	reportUsecase := reportUC.NewUsecase(reports, audits, users, uow, logger)
	transitionUsecase := transition.NewUsecase(users, uow, enq, logger)

	h := httpadp.NewHandler()
	rh := httpadp.NewReportHandler(reportUsecase)
	ah := httpadp.NewActionHandler(transitionUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)
	e.GET("/reports", rh.ListReports)
	e.GET("/reports/:report_id", rh.GetReport)
	e.GET("/reports/:report_id/audit", rh.GetAuditTrail)
	e.POST("/reports", rh.CreateReport, idemp)
	e.POST("/reports/:report_id/actions", ah.PerformAction, idemp)

	addr := ":" + cfg.AppPort
	logger.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
