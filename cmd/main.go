package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"akeneo_bridge/internal/controller"
	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/internal/router"
	"akeneo_bridge/internal/service"
	"akeneo_bridge/internal/task"
	"akeneo_bridge/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 种初始管理员
	seedAdmin(deps)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Sync,
		deps.Controllers.Config,
		deps.Controllers.Catalog,
		deps.Controllers.DisplayGroup,
	)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	ImportTask  *task.ImportTask
}

// Repositories 仓库集合
type Repositories struct {
	Record       repository.RecordRepository
	Catalog      repository.CatalogRepository
	Translation  repository.TranslationRepository
	Config       repository.ConfigRepository
	DisplayGroup repository.DisplayGroupRepository
	User         repository.UserRepository
}

// Services 服务集合
type Services struct {
	Import       *service.ImportService
	Config       *service.ConfigService
	DisplayGroup *service.DisplayGroupService
	User         *service.UserService
	Storage      *service.StorageService
}

// Controllers 控制器集合
type Controllers struct {
	Auth         *controller.AuthController
	Sync         *controller.SyncController
	Config       *controller.ConfigController
	Catalog      *controller.CatalogController
	DisplayGroup *controller.DisplayGroupController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN", fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "akeneo_bridge"),
		getEnv("DB_PORT", "5432"),
	))

	return database.InitDB(dsn,
		// Manager
		&model.SysUser{}, &model.SiteConfig{},
		// Akeneo 基础数据
		&model.Locale{}, &model.Channel{}, &model.LabelTranslation{},
		// 属性
		&model.ProductAttributeGroup{}, &model.ProductAttribute{}, &model.ProductAttributeOption{},
		// 族 & 分类
		&model.Family{}, &model.FamilyVariant{}, &model.ProductCategory{},
		// 产品
		&model.ProductModel{}, &model.Product{}, &model.ProductMediaFile{},
		// 展示组
		&model.DisplayGroup{}, &model.DisplayGroupEdge{}, &model.DisplayGroupAttribute{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Record:       repository.NewRecordRepository(db),
		Catalog:      repository.NewCatalogRepository(db),
		Translation:  repository.NewTranslationRepository(db),
		Config:       repository.NewConfigRepository(db),
		DisplayGroup: repository.NewDisplayGroupRepository(db),
		User:         repository.NewUserRepository(db),
	}

	// -------- 存储服务 --------
	storageSvc := initStorageService()

	// -------- 业务服务 --------
	services := &Services{
		Storage:      storageSvc,
		Config:       service.NewConfigService(repos.Config),
		DisplayGroup: service.NewDisplayGroupService(repos.DisplayGroup),
		User:         service.NewUserService(repos.User),
	}
	services.Import = service.NewImportService(
		repos.Record, repos.Catalog, repos.Translation, repos.Config, storageSvc,
	)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:         controller.NewAuthController(services.User),
		Sync:         controller.NewSyncController(services.Import),
		Config:       controller.NewConfigController(services.Config),
		Catalog:      controller.NewCatalogController(repos.Catalog),
		DisplayGroup: controller.NewDisplayGroupController(services.DisplayGroup, services.Config),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageService 初始化存储服务 (未配置 bucket 时为 nil，媒体只存元数据)
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("AWS_ENDPOINT", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "akeneo-bridge"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	if storageSvc == nil {
		log.Println("未配置对象存储，媒体文件只同步元数据")
	}
	return storageSvc
}

// seedAdmin 没有任何账号时创建初始管理员
func seedAdmin(deps *Dependencies) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := deps.Services.User.EnsureAdmin(ctx,
		getEnv("ADMIN_USERNAME", "admin"),
		getEnv("ADMIN_PASSWORD", "admin123"),
	)
	if err != nil {
		log.Fatalf("初始管理员创建失败: %v", err)
	}
}

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	importTask := task.NewImportTask(deps.Services.Import)
	if spec := getEnv("SYNC_CRON", ""); spec != "" {
		importTask.SetSchedule(spec)
	}
	importTask.Start()
	deps.ImportTask = importTask
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

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
