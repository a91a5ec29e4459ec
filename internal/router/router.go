package router

import (
	"time"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/config"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/handler"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/middleware"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/repository"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	bookRepo := repository.NewBookRepository(db)
	setRepo := repository.NewSetRepository(db)
	qtyRepo := repository.NewSetQuantityRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pendingRepo := repository.NewPendingRepository(db)
	masterRepo := repository.NewMasterDataRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	bookSvc := service.NewBookService(bookRepo, masterRepo)
	setSvc := service.NewSetService(setRepo, qtyRepo, bookRepo, masterRepo)
	qtySvc := service.NewQuantityService(qtyRepo, setRepo, masterRepo)
	orderSvc := service.NewOrderService(orderRepo, bookRepo, masterRepo, dispatcher)
	pendingSvc := service.NewPendingService(pendingRepo, bookRepo, masterRepo)
	masterSvc := service.NewMasterDataService(masterRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cacheTTL := time.Duration(cfg.PriceCacheTTLMinutes) * time.Minute
	booksH := handler.NewBooksHandler(bookSvc, rdb, cacheTTL)
	setsH := handler.NewSetsHandler(setSvc, qtySvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	pendingH := handler.NewPendingHandler(pendingSvc)
	masterH := handler.NewMasterDataHandler(masterSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Price lookup — read only, open to store terminals without a token
	r.GET("/v1/books/:id/price", booksH.GetPrice)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyRole := middleware.RequireRole(middleware.RoleClerk, middleware.RoleManager, middleware.RoleAdmin)
		managerUp := middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin)
		adminOnly := middleware.RequireRole(middleware.RoleAdmin)

		// Catalog — everyone reads, managers write
		v1.GET("/books", anyRole, booksH.List)
		v1.GET("/books/:id", anyRole, booksH.GetByID)
		books := v1.Group("/books", managerUp)
		{
			books.POST("", booksH.Create)
			books.PUT("/:id", booksH.Update)
			books.DELETE("/:id", booksH.Deactivate)
		}

		// Sets
		v1.GET("/sets", anyRole, setsH.List)
		v1.GET("/sets/:id", anyRole, setsH.GetByID)
		sets := v1.Group("/sets", managerUp)
		{
			sets.POST("", setsH.Create)
			sets.PUT("/:id", setsH.Update)
			sets.POST("/:id/copy", setsH.Copy)
			sets.PUT("/:id/lines/:lineId/status", setsH.SetLineStatus)
			sets.DELETE("/:id/lines/:lineId", setsH.RemoveLine)
		}

		// Quantity ledger
		v1.GET("/set-quantities", anyRole, setsH.ListQuantities)
		v1.PUT("/set-quantities", managerUp, setsH.SetQuantities)

		// Orders
		v1.POST("/orders", anyRole, ordersH.Submit)
		v1.GET("/orders", anyRole, ordersH.List)
		v1.GET("/orders/:id", anyRole, ordersH.GetByID)

		// Pending deliveries
		v1.GET("/pending/books", anyRole, pendingH.ListBooks)
		v1.PUT("/pending", anyRole, pendingH.SetStatus)

		// Master data — everyone reads, admins write
		v1.GET("/publications", anyRole, masterH.ListPublications)
		v1.GET("/subtitles", anyRole, masterH.ListSubtitles)
		v1.GET("/languages", anyRole, masterH.ListLanguages)
		v1.GET("/classes", anyRole, masterH.ListClasses)
		v1.GET("/customers", anyRole, masterH.ListCustomers)
		v1.GET("/branches", anyRole, masterH.ListBranches)
		v1.GET("/stationery-items", anyRole, masterH.ListStationeryItems)
		admin := v1.Group("", adminOnly)
		{
			admin.POST("/publications", masterH.CreatePublication)
			admin.POST("/subtitles", masterH.CreateSubtitle)
			admin.POST("/languages", masterH.CreateLanguage)
			admin.POST("/classes", masterH.CreateClass)
			admin.POST("/customers", masterH.CreateCustomer)
			admin.POST("/branches", masterH.CreateBranch)
			admin.POST("/stationery-items", masterH.CreateStationeryItem)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
