package container

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/session"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartService "storefront-backend/internal/domains/cart/service"
	categoryHandler "storefront-backend/internal/domains/category/handler"
	categoryRepo "storefront-backend/internal/domains/category/repository"
	categoryService "storefront-backend/internal/domains/category/service"
	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
	productHandler "storefront-backend/internal/domains/product/handler"
	productRepo "storefront-backend/internal/domains/product/repository"
	productService "storefront-backend/internal/domains/product/service"
	reviewHandler "storefront-backend/internal/domains/review/handler"
	reviewRepo "storefront-backend/internal/domains/review/repository"
	reviewService "storefront-backend/internal/domains/review/service"
	userHandler "storefront-backend/internal/domains/user/handler"
	userRepo "storefront-backend/internal/domains/user/repository"
	userService "storefront-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency.
// Built once at startup in dependency order: config, infrastructure,
// repositories, services, handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config       *config.Config
	DB           *database.PostgresDB
	Redis        *infraCache.RedisClient
	Cache        cache.Cache
	SessionStore session.Store
	Storage      *storage.MinIOStorage
	Images       *storage.ImageUploader
	JWTManager   *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     userRepo.UserRepository
	CategoryRepo categoryRepo.CategoryRepository
	ProductRepo  productRepo.ProductRepository
	OrderRepo    orderRepo.OrderRepository
	ReviewRepo   reviewRepo.ReviewRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService     userService.ServiceInterface
	CategoryService categoryService.ServiceInterface
	ProductService  productService.ServiceInterface
	CartService     cartService.ServiceInterface
	OrderService    orderService.ServiceInterface
	ReviewService   reviewService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
	CartHandler     *cartHandler.CartHandler
	OrderHandler    *orderHandler.OrderHandler
	ReviewHandler   *reviewHandler.ReviewHandler
}

// NewContainer builds the whole dependency graph
func NewContainer() (*Container, error) {
	logger.Info("initializing container", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// ========================================
	// STEP 3: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if c.Config.App.AutoMigrate {
		if err := runMigrations(dbConfig.DSN()); err != nil {
			return err
		}
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	return nil
}

func runMigrations(dsn string) error {
	migrator, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up()
}

// initRedis connects the client shared by the session store and the product cache.
// Sessions hold the cart, so Redis is required.
func (c *Container) initRedis() error {
	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.Redis = rc
	c.Cache = infraCache.NewRedisCache(rc.Client)
	c.SessionStore = session.NewRedisStore(rc.Client)
	return nil
}

func (c *Container) initStorage() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}

	c.Storage = minioStorage
	c.Images = storage.NewImageUploader(minioStorage, storage.NewImageProcessor())
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		c.Config.Auth.BcryptCost,
	)
	c.ProductService = productService.NewProductService(
		c.ProductRepo,
		c.Cache,
		c.Config.Session.ProductTTL,
		c.Images,
	)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Images, c.ProductService)

	// Cart and checkout read products through the product service
	c.CartService = cartService.NewCartService(c.ProductService, c.Config.Session.CartSessionID)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.CartService, c.ProductService)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// Cleanup releases connections; called on shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}

	logger.Info("container cleanup completed", nil)
}
