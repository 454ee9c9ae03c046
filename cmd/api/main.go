package main

import (
	"context"
	"log"
	"time"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/core/cache"
	"storefront-api/internal/core/config"
	"storefront-api/internal/core/database"
	"storefront-api/internal/core/logger"
	"storefront-api/internal/core/server"
	categoryadapter "storefront-api/internal/features/categories/adapters"
	categoryhandler "storefront-api/internal/features/categories/handler"
	categoryservice "storefront-api/internal/features/categories/service"
	orderadapter "storefront-api/internal/features/orders/adapters"
	orderhandler "storefront-api/internal/features/orders/handler"
	orderservice "storefront-api/internal/features/orders/service"
	productadapter "storefront-api/internal/features/products/adapters"
	producthandler "storefront-api/internal/features/products/handler"
	productservice "storefront-api/internal/features/products/service"
	statsadapter "storefront-api/internal/features/stats/adapters"
	statshandler "storefront-api/internal/features/stats/handler"
	statsservice "storefront-api/internal/features/stats/service"
	useradapter "storefront-api/internal/features/users/adapters"
	userhandler "storefront-api/internal/features/users/handler"
	userservice "storefront-api/internal/features/users/service"

	"go.uber.org/zap"
)

// @title Storefront API
// @version 1.0
// @description E-commerce catalog, order and dashboard backend.
// @contact.name API Support
// @contact.email support@storefront-api.dev
// @license.name MIT
// @host localhost:5000
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Postgres connection failed", zap.Error(err))
	}
	defer db.Close()
	l.Info("Postgres connection verified")

	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Repositories
	orderRepo := orderadapter.NewPostgresOrderRepository(db)
	productRepo := productadapter.NewPostgresProductRepository(db)
	categoryRepo := categoryadapter.NewPostgresCategoryRepository(db)
	userRepo := useradapter.NewPostgresUserRepository(db)
	statsRepo := statsadapter.NewPostgresStatsRepository(db)

	// Services & Handlers
	orderHdl := orderhandler.NewOrderHandler(orderservice.NewOrderService(orderRepo))
	productHdl := producthandler.NewProductHandler(productservice.NewProductService(productRepo))
	categoryHdl := categoryhandler.NewCategoryHandler(categoryservice.NewCategoryService(categoryRepo))
	userHdl := userhandler.NewUserHandler(userservice.NewUserService(userRepo, cfg.Auth.JWTSecret))
	statsHdl := statshandler.NewStatsHandler(statsservice.NewStatsService(statsRepo, redisCache))

	// Middleware
	authorize := auth.RequireAccessToken(cfg.Auth.AccessToken)
	authorizeAdmin := auth.RequireAdmin(cfg.Auth.JWTSecret, userRepo)

	srv := server.New(cfg)
	app := srv.App

	// Category routes
	category := app.Group("/api/category")
	category.Get("/getAllCategories", authorize, categoryHdl.GetAllCategories)
	category.Post("/addCategory", authorizeAdmin, categoryHdl.AddCategory)
	category.Put("/updateCategory/:id", authorizeAdmin, categoryHdl.UpdateCategory)
	category.Delete("/deleteCategory/:id", authorizeAdmin, categoryHdl.DeleteCategory)

	// Product routes
	product := app.Group("/api/product")
	product.Get("/getAllProducts", authorize, productHdl.GetAllProducts)
	product.Get("/getProductByProductId/:productId", authorize, productHdl.GetProductByProductID)
	product.Get("/getProductByDesignId/:designId", authorize, productHdl.GetProductByDesignID)
	product.Get("/getProductById/:id", authorize, productHdl.GetProductByID)
	product.Get("/getProductsByCategory/:category", authorize, productHdl.GetProductsByCategory)
	product.Get("/searchProducts", authorize, productHdl.SearchProducts)
	product.Post("/addProduct", authorizeAdmin, productHdl.AddProduct)
	product.Put("/updateProduct/:id", authorizeAdmin, productHdl.UpdateProduct)
	product.Delete("/deleteProduct/:id", authorizeAdmin, productHdl.DeleteProduct)

	// Order routes
	order := app.Group("/api/order")
	order.Post("/placeOrder", authorize, orderHdl.PlaceOrder)
	order.Get("/getOrder/:orderId", authorizeAdmin, orderHdl.GetOrder)
	order.Get("/getAllOrders", authorizeAdmin, orderHdl.GetAllOrders)
	order.Get("/getOrdersByStatus", authorizeAdmin, orderHdl.GetOrdersByStatus)
	order.Delete("/deleteOrder/:orderId", authorizeAdmin, orderHdl.DeleteOrder)
	order.Put("/updateStatus/:orderId", authorizeAdmin, orderHdl.UpdateStatus)
	order.Get("/getOrderStatus/:orderId", authorize, orderHdl.GetOrderStatus)

	// User routes
	user := app.Group("/api/user")
	user.Post("/register", authorizeAdmin, userHdl.Register)
	user.Post("/login", authorize, userHdl.Login)

	// Stats route
	app.Get("/api/stats/getStats", authorizeAdmin, statsHdl.GetStats)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
