package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "laundrybill/api/swagger" // swagger docs
	"laundrybill/internal/config"
	"laundrybill/internal/database"
	"laundrybill/internal/handler"
	"laundrybill/internal/middleware"
	"laundrybill/internal/notify"
	"laundrybill/internal/repository"
	"laundrybill/internal/repository/memory"
	"laundrybill/internal/service"
	"laundrybill/internal/storage"
	"laundrybill/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Laundry Billing API
// @version         1.0
// @description     Billing, catalog and reporting API for a laundry shop.
// @host            localhost:5000
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	// Money fields go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := cfg.Shop.Location()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	repos := openStore(cfg)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(cfg.CORS.AllowedOrigins)
	go wsHub.Run()

	archive, err := storage.NewArchive(cfg.Upload.Dir, cfg.Upload.ExportPath, loc)
	if err != nil {
		log.Fatalf("Upload storage unavailable: %v", err)
	}

	clock := service.SystemClock(loc)

	// Set up dependencies (Repository -> Service -> Handler)
	shopService := service.NewShopService(repos.Shop, repos.Audit, repos.TxManager, cfg.Shop.DefaultTaxRate)
	itemService := service.NewItemService(repos.Items, repos.Audit, repos.TxManager)
	billService := service.NewBillService(repos.Bills, repos.Audit, repos.TxManager, shopService, wsHub, clock, cfg.Shop.InvoicePrefix)
	reportService := service.NewReportService(repos.Bills, clock)
	userService := service.NewUserService(repos.Users, repos.Audit, 0)
	auditService := service.NewAuditService(repos.Audit)
	documentService := service.NewDocumentService(archive, newNotifier(cfg.WhatsApp), clock, cfg.WhatsApp.Timeout)

	credentialLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	defer credentialLimiter.Close()

	// Initialize Handlers
	shopHandler := handler.NewShopHandler(shopService)
	itemHandler := handler.NewItemHandler(itemService)
	billHandler := handler.NewBillHandler(billService)
	reportHandler := handler.NewReportHandler(reportService)
	userHandler := handler.NewUserHandler(userService, credentialLimiter.Middleware())
	auditHandler := handler.NewAuditHandler(auditService)
	documentHandler := handler.NewDocumentHandler(documentService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.BodyLimit(cfg.Upload.BodyLimit))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "store": cfg.Store.Driver})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Stored invoice PDFs
	router.Static(handler.UploadsPath, archive.UploadDir())

	// API Routing
	shopHandler.RegisterRoutes(router.Group(""))
	itemHandler.RegisterRoutes(router.Group(""))
	billHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	userHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	documentHandler.RegisterRoutes(router.Group(""))

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

func openStore(cfg *config.Config) repository.Set {
	if cfg.Store.Driver == config.DriverMemory {
		log.Println("Using in-memory store; data is lost on restart.")
		return memory.NewStore().Set()
	}

	db, err := database.NewConnection(cfg.Database.DSN(), cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")
	return repository.NewSet(db)
}

func newNotifier(cfg config.WhatsAppConfig) notify.Notifier {
	if !cfg.Enabled {
		log.Println("WhatsApp delivery disabled.")
		return notify.Nop{}
	}
	return notify.NewWhatsAppGateway(notify.GatewayConfig{
		URL:         cfg.GatewayURL,
		Token:       cfg.Token,
		CountryCode: cfg.CountryCode,
		Timeout:     cfg.Timeout,
	})
}
