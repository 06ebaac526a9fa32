package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"importbr_v1_202609/internal/controller"
	"importbr_v1_202609/internal/model"
	"importbr_v1_202609/internal/repository"
	"importbr_v1_202609/internal/router"
	"importbr_v1_202609/internal/service"
	"importbr_v1_202609/internal/task"
	"importbr_v1_202609/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	ExchangeRate repository.ExchangeRateRepository
	CalcLog      repository.CalcLogRepository
}

// Services 服务集合
type Services struct {
	Rate      *service.ExchangeRateService
	Calc      *service.CalcService
	Freight   *service.FreightService
	ImportTax *service.ImportTaxService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=importbr port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// 汇率
		&model.ExchangeRate{},
		// 计算日志
		&model.CalcLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		ExchangeRate: repository.NewExchangeRateRepository(db),
		CalcLog:      repository.NewCalcLogRepository(db),
	}

	// -------- 服务层 --------
	rateSvc := service.NewExchangeRateService(service.RateConfig{
		QuoteURL: getEnv("RATE_QUOTE_URL", ""),
	}, repos.ExchangeRate)

	services := &Services{
		Rate:      rateSvc,
		Calc:      service.NewCalcService(rateSvc, repos.CalcLog),
		Freight:   service.NewFreightService(rateSvc, repos.CalcLog),
		ImportTax: service.NewImportTaxService(),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Calc: controller.NewCalcController(services.Calc, services.Freight, services.ImportTax),
		Rate: controller.NewRateController(services.Rate),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 汇率定时刷新（未配置牌价地址时任务只记日志）
	rateTask := task.NewRateRefreshTask(deps.Services.Rate)
	rateTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
