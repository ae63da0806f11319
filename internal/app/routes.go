package app

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/repo"
	"storefront/internal/service"
	"storefront/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// NewTaskGenerator builds the generator with every follow-up rule. The API
// and the taskgen CLI share it.
func NewTaskGenerator(cfg config.TaskConfig, log logger.Logger, db *pgxpool.Pool) *tasks.Generator {
	rules := tasks.DefaultRules(cfg,
		repo.NewPGSubscriptionRepo(db),
		repo.NewPGOrderRepo(db),
		repo.NewPGQuoteRepo(db),
		repo.NewPGAuctionRepo(db),
	)
	return tasks.NewGenerator(repo.NewPGTaskRepo(db), log.With("component", "taskgen"), rules...)
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log logger.Logger, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, db, rdb))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	base := cfg.Shop.BaseCurrency
	ttl := cfg.Redis.DefaultTTL.Duration()

	userRepo := repo.NewPGUserRepo(db)
	productRepo := repo.NewPGProductRepo(db)
	orderRepo := repo.NewPGOrderRepo(db)

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	pricingSvc := service.NewPricingService(repo.NewPGRateRepo(db), cache.NewRateCache(rdb, ttl), base)
	catalogSvc := service.NewCatalogService(productRepo, cache.NewCatalogCache(rdb, ttl), log.With("component", "catalog"))
	importRates, _ := cfg.Import.Rates() // validated by config.Load

	authH := handlers.NewAuthHandler(sessionStore, service.NewUserService(userRepo), cfg.Session.CookieSecure)
	catalogH := handlers.NewCatalogHandler(catalogSvc, pricingSvc)
	pricingH := handlers.NewPricingHandler(pricingSvc)
	importH := handlers.NewImportHandler(
		service.NewImportService(productRepo, repo.NewPGImportSimRepo(db), pricingSvc, importRates), base)
	cartH := handlers.NewCartHandler(service.NewCartService(repo.NewPGCartRepo(db), productRepo, base), base)
	orderH := handlers.NewOrderHandler(service.NewOrderService(orderRepo, productRepo, userRepo, base))
	quoteH := handlers.NewQuoteHandler(service.NewQuoteService(repo.NewPGQuoteRepo(db), productRepo, base), base)
	auctionH := handlers.NewAuctionHandler(service.NewAuctionService(repo.NewPGAuctionRepo(db), productRepo, base), base)
	subH := handlers.NewSubscriptionHandler(service.NewSubscriptionService(repo.NewPGSubscriptionRepo(db), userRepo))
	returnH := handlers.NewReturnHandler(service.NewReturnService(repo.NewPGReturnRepo(db), orderRepo))
	messageH := handlers.NewMessageHandler(service.NewMessageService(repo.NewPGMessageRepo(db), userRepo))
	taskH := handlers.NewTaskHandler(service.NewTaskService(repo.NewPGTaskRepo(db)), NewTaskGenerator(cfg.Tasks, log, db))

	api := r.Group("/api/v1")
	public := api.Group("", auth.OptionalSession(sessionStore))
	protected := api.Group("", auth.RequireSession(sessionStore))
	admin := api.Group("/admin", auth.RequireSession(sessionStore), auth.RequireAdmin())

	registerAuthRoutes(api, protected, authH)
	registerCatalogRoutes(public, admin, catalogH)
	registerPricingRoutes(public, admin, pricingH)
	registerImportRoutes(public, protected, importH)
	registerCartRoutes(protected, cartH)
	registerOrderRoutes(protected, admin, orderH)
	registerQuoteRoutes(protected, admin, quoteH)
	registerAuctionRoutes(public, protected, admin, auctionH)
	registerSubscriptionRoutes(protected, admin, subH)
	registerReturnRoutes(protected, admin, returnH)
	registerMessageRoutes(protected, admin, messageH)
	registerTaskRoutes(admin, taskH)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":  "Storefront API",
			"version":  cfg.App.Version,
			"env":      cfg.App.Env,
			"currency": cfg.Shop.BaseCurrency,
			"docs":     "/swagger/index.html",
			"spec":     "/swagger-doc.json",
			"health":   "/health",
			"api":      "/api/v1",
		})
	}
}

// healthHandler reports 503 when postgres or redis cannot be reached.
func healthHandler(cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := gin.H{"ok": true, "env": cfg.App.Env, "postgres": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			status["postgres"], status["ok"], code = err.Error(), false, http.StatusServiceUnavailable
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"], status["ok"], code = err.Error(), false, http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api, protected *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
}

func registerCatalogRoutes(public, admin *gin.RouterGroup, h *handlers.CatalogHandler) {
	public.GET("/products", h.List)
	public.GET("/products/:id", h.Get)
	admin.GET("/products", h.AdminList)
	admin.POST("/products", h.Create)
	admin.PATCH("/products/:id", h.Update)
	admin.DELETE("/products/:id", h.Delete)
}

func registerPricingRoutes(public, admin *gin.RouterGroup, h *handlers.PricingHandler) {
	public.GET("/rates", h.ListRates)
	public.GET("/rates/convert", h.Convert)
	admin.PUT("/rates/:currency", h.SetRate)
}

func registerImportRoutes(public, protected *gin.RouterGroup, h *handlers.ImportHandler) {
	public.GET("/import-simulations/defaults", h.Defaults)
	public.POST("/import-simulations", h.Simulate)
	protected.GET("/import-simulations", h.History)
}

func registerCartRoutes(protected *gin.RouterGroup, h *handlers.CartHandler) {
	protected.GET("/cart", h.Get)
	protected.DELETE("/cart", h.Clear)
	protected.POST("/cart/items", h.Add)
	protected.PATCH("/cart/items/:productId", h.SetQuantity)
	protected.DELETE("/cart/items/:productId", h.Remove)
	protected.POST("/cart/checkout", h.Checkout)
}

func registerOrderRoutes(protected, admin *gin.RouterGroup, h *handlers.OrderHandler) {
	protected.GET("/orders", h.MyList)
	protected.GET("/orders/:id", h.MyGet)
	admin.GET("/orders", h.AdminList)
	admin.POST("/orders", h.AdminCreate)
	admin.GET("/orders/:id", h.AdminGet)
	admin.PATCH("/orders/:id/status", h.ChangeStatus)
	admin.POST("/orders/:id/payments", h.RecordPayment)
	admin.PATCH("/orders/:id/payments/:paymentId", h.ConfirmPayment)
}

func registerQuoteRoutes(protected, admin *gin.RouterGroup, h *handlers.QuoteHandler) {
	protected.POST("/quotes", h.Request)
	protected.GET("/quotes", h.MyList)
	protected.GET("/quotes/:id", h.Get)
	protected.POST("/quotes/:id/messages", h.PostMessage)
	protected.POST("/quotes/:id/accept", h.Accept)
	protected.POST("/quotes/:id/reject", h.Reject)
	admin.GET("/quotes", h.AdminList)
	admin.GET("/quotes/:id", h.Get)
	admin.POST("/quotes/:id/messages", h.PostMessage)
	admin.POST("/quotes/:id/offer", h.Offer)
}

func registerAuctionRoutes(public, protected, admin *gin.RouterGroup, h *handlers.AuctionHandler) {
	public.GET("/auctions", h.List)
	public.GET("/auctions/:id", h.Get)
	protected.POST("/auctions/:id/bids", h.Bid)
	admin.POST("/auctions", h.Create)
	admin.POST("/auctions/:id/close", h.Close)
}

func registerSubscriptionRoutes(protected, admin *gin.RouterGroup, h *handlers.SubscriptionHandler) {
	protected.GET("/profile/subscriptions", h.MyProfiles)
	admin.GET("/subscriptions", h.List)
	admin.POST("/subscriptions", h.Create)
	admin.GET("/subscriptions/:id", h.Get)
	admin.POST("/subscriptions/:id/renew", h.Renew)
	admin.POST("/subscriptions/:id/cancel", h.Cancel)
	admin.POST("/subscriptions/:id/profiles", h.AssignProfile)
	admin.DELETE("/subscriptions/:id/profiles/:profileId", h.RemoveProfile)
}

func registerReturnRoutes(protected, admin *gin.RouterGroup, h *handlers.ReturnHandler) {
	protected.POST("/returns", h.Request)
	protected.GET("/returns", h.MyList)
	admin.GET("/returns", h.AdminList)
	admin.POST("/returns/:id/resolve", h.Resolve)
}

func registerMessageRoutes(protected, admin *gin.RouterGroup, h *handlers.MessageHandler) {
	protected.GET("/profile/messages", h.MyThread)
	protected.POST("/profile/messages", h.MyPost)
	admin.GET("/users/:id/messages", h.AdminThread)
	admin.POST("/users/:id/messages", h.AdminPost)
}

func registerTaskRoutes(admin *gin.RouterGroup, h *handlers.TaskHandler) {
	admin.GET("/tasks", h.List)
	admin.POST("/tasks/generate", h.Generate)
	admin.POST("/tasks/:id/complete", h.Complete)
}
