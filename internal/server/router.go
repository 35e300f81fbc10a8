package server

import (
	"auction_house/internal/api"
	"auction_house/internal/auction"
	"auction_house/internal/middleware"
	"auction_house/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SetupRouter configures all Gin routes for the application. rdb may be nil
// to run without the Redis projection cache (tests do).
func SetupRouter(store repository.Store, rdb *redis.Client, jwtSecret string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())                     // recover from panics
	router.Use(middleware.RequestLoggerMiddleware) // request logging with request ids

	accounts := auction.NewAccounts(store)
	engine := auction.NewEngine(store)
	watchlist := auction.NewWatchlist(store)
	comments := auction.NewComments(store)

	// Account routes
	router.POST("/register", api.RegisterHandler(accounts))
	router.POST("/login", api.LoginHandler(accounts, jwtSecret))

	// Public browse routes; a session token is honored when present so the
	// listing detail projection knows the viewer
	public := router.Group("/", middleware.OptionalJWTMiddleware(jwtSecret))
	{
		public.GET("/listings", api.ListOpenListingsHandler(engine, rdb))
		public.GET("/listings/:id", api.GetListingHandler(engine))
		public.GET("/listings/:id/comments", api.ListCommentsHandler(comments))
		public.GET("/categories", api.ListCategoriesHandler(engine, rdb))
		public.GET("/categories/:id/listings", api.ListByCategoryHandler(engine, rdb))
	}

	// Routes that require an authenticated caller
	authed := router.Group("/", middleware.JWTAuthMiddleware(jwtSecret))
	{
		authed.POST("/listings", api.CreateListingHandler(engine, rdb))
		authed.POST("/listings/:id/bids", api.PlaceBidHandler(engine))
		authed.POST("/listings/:id/close", api.CloseListingHandler(engine, rdb))
		authed.POST("/listings/:id/comments", api.AddCommentHandler(comments))
		authed.GET("/watchlist", api.ListWatchlistHandler(watchlist))
		authed.GET("/watchlist/count", api.WatchlistCountHandler(watchlist, rdb))
		authed.PUT("/watchlist/:listing_id", api.ToggleWatchlistHandler(watchlist, rdb))
	}

	// Admin routes (protected, admin only)
	admin := router.Group("/admin", middleware.JWTAuthMiddleware(jwtSecret), middleware.AdminOnlyMiddleware(store))
	{
		admin.POST("/categories", api.CreateCategoryHandler(engine))
	}

	return router
}
