package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chaviet/internal/handlers"
	"chaviet/internal/middleware"
	"chaviet/internal/models"
	"chaviet/internal/repositories"
	"chaviet/internal/services"
	"chaviet/pkg/rabbitmq"

	"github.com/spf13/viper"
)

// buildApp reads configuration and wires the whole application: database,
// repositories, services, handlers, and routes. The returned RabbitMQ client
// is nil when no RABBITMQ_URL is configured.
func buildApp() (*fiber.App, *rabbitmq.Client, error) {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables or a file
	viper.SetDefault("DATABASE_DSN", "") // empty -> in-memory SQLite
	viper.SetDefault("RABBITMQ_URL", "") // empty -> no event publishing
	viper.SetDefault("JWT_SECRET", "chaviet-dev-secret")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", 2000)
	viper.SetDefault("SHIPPING_FLAT_FEE", 20)
	viper.SetDefault("CHECKOUT_SUBMIT_DELAY", "800ms")
	viper.AutomaticEnv() // Load environment variables

	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	freeShippingThreshold := viper.GetInt64("FREE_SHIPPING_THRESHOLD")
	shippingFlatFee := viper.GetInt64("SHIPPING_FLAT_FEE")
	submitDelay := viper.GetDuration("CHECKOUT_SUBMIT_DELAY")

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher rabbitmq.Publisher
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			return nil, nil, err
		}
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, order events will not be published.")
	}

	// --- Initialize Database (GORM) ---
	// Postgres when a DSN is configured, in-memory SQLite otherwise so the
	// service runs standalone for local development.
	var dialector gorm.Dialector
	if databaseDSN != "" {
		dialector = postgres.Open(databaseDSN)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory SQLite.")
		dialector = sqlite.Open("file::memory:?cache=shared")
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}, &models.InventoryItem{}); err != nil {
		return nil, nil, err
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	inventoryRepo := repositories.NewGORMInventoryRepository(db)
	// Carts, orders, and coupons are session/append-only state; the
	// in-memory repositories cover them.
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository()
	couponRepo := repositories.NewMockCouponRepository()

	// Seed catalog, stock, and the recognized coupon code.
	seedCatalog(productRepo, inventoryRepo)
	seedCoupons(couponRepo)

	// --- Initialize Services ---
	inventoryService := services.NewInventoryService(inventoryRepo)
	productService := services.NewProductService(productRepo, inventoryService)
	orderService := services.NewOrderService(orderRepo, inventoryService, publisher)
	cartService := services.NewCartService(cartRepo, productRepo, couponRepo, orderService,
		freeShippingThreshold, shippingFlatFee, submitDelay)
	authService := services.NewAuthService(userRepo, jwtSecret)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cartHandler := handlers.NewCartHandler(cartService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes: auth and catalog reads.
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)

	// Protected routes: cart, orders, and the back-office surface.
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	inventoryHandler.RegisterRoutes(protected)
	productHandler.RegisterAdminRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, mqClient, nil
}

func main() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.AutomaticEnv()
	appPort := viper.GetString("APP_PORT")

	app, mqClient, err := buildApp()
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	if mqClient != nil {
		defer mqClient.Close() // Ensure the connection is closed on exit
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The consumer listens for order lifecycle events. A real deployment
	// would hand these to fulfillment or notification workers.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Order Event (Tag: %d, Type: %s): %s", msg.DeliveryTag, msg.Type, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	// Shutdown Fiber app
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// Close RabbitMQ connection is handled by defer in main
	log.Println("Server gracefully stopped")
}

// seedCatalog populates the catalog and stock counters with the storefront's
// initial tea and liquor listings. Prices are in integer currency units.
func seedCatalog(productRepo repositories.ProductRepository, inventoryRepo repositories.InventoryRepository) {
	products := []models.Product{
		{ID: "prod-1", Name: "高山烏龍茶", NameVi: "Trà Ô Long núi cao", Category: models.CategoryTea, Description: "Hand-picked high mountain oolong", Price: 2680},
		{ID: "prod-2", Name: "陳年普洱茶餅", NameVi: "Bánh trà Phổ Nhĩ lâu năm", Category: models.CategoryTea, Description: "Aged pu-erh tea cake", Price: 2980},
		{ID: "prod-3", Name: "金門高粱酒", NameVi: "Rượu cao lương Kim Môn", Category: models.CategoryLiquor, Description: "Kinmen sorghum liquor, 58 proof", Price: 1380},
	}
	stock := map[string]int{"prod-1": 40, "prod-2": 25, "prod-3": 60}

	for i := range products {
		if _, err := productRepo.GetByID(products[i].ID); err == nil {
			continue // already seeded
		}
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
			continue
		}
		item := &models.InventoryItem{
			ProductID:         products[i].ID,
			CurrentStock:      stock[products[i].ID],
			LowStockThreshold: 30,
		}
		if err := inventoryRepo.Save(item); err != nil {
			log.Printf("Error seeding inventory for product %s: %v", products[i].ID, err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %s, stock: %d)", products[i].Name, products[i].ID, item.CurrentStock)
	}
}

// seedCoupons registers the recognized coupon codes.
func seedCoupons(couponRepo repositories.CouponRepository) {
	coupon := &models.Coupon{Code: "VIP888", DiscountFraction: 0.12, MinOrderAmount: 0}
	if err := couponRepo.Create(coupon); err != nil {
		log.Printf("Error seeding coupon %s: %v", coupon.Code, err)
	} else {
		log.Printf("Seeded coupon: %s (%.0f%% off)", coupon.Code, coupon.DiscountFraction*100)
	}
}
