package router

import (
	"github.com/gin-gonic/gin"
	"github.com/woodnest/woodnest-backend/config"
	"github.com/woodnest/woodnest-backend/internal/app/controller"
	"github.com/woodnest/woodnest-backend/internal/middleware"
)

type Router struct {
	productController     *controller.ProductController
	categoryController    *controller.CategoryController
	polishColorController *controller.PolishColorController
	discountController    *controller.DiscountController
	cartController        *controller.CartController
	orderController       *controller.OrderController
	exportController      *controller.ExportController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	polishColorController *controller.PolishColorController,
	discountController *controller.DiscountController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	exportController *controller.ExportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:     productController,
		categoryController:    categoryController,
		polishColorController: polishColorController,
		discountController:    discountController,
		cartController:        cartController,
		orderController:       orderController,
		exportController:      exportController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "WOODNEST API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public storefront
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)
		}

		v1.GET("/categories", r.categoryController.GetCategories)
		v1.GET("/polish-colors", r.polishColorController.GetPolishColors)

		// Customer surface
		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("", r.orderController.Checkout)
		}

		v1.POST("/coupons/redeem",
			r.authMiddleware.Authenticate(),
			r.discountController.RedeemCoupon,
		)

		// Back office
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole(middleware.RoleAdmin))
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)

			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.PUT("/categories/:id", r.categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)

			admin.POST("/polish-colors", r.polishColorController.CreatePolishColor)
			admin.PUT("/polish-colors/:id", r.polishColorController.UpdatePolishColor)
			admin.DELETE("/polish-colors/:id", r.polishColorController.DeletePolishColor)

			admin.GET("/discounts", r.discountController.GetDiscounts)
			admin.GET("/discounts/:id", r.discountController.GetDiscountByID)
			admin.POST("/discounts", r.discountController.CreateDiscount)
			admin.PUT("/discounts/:id", r.discountController.UpdateDiscount)
			admin.DELETE("/discounts/:id", r.discountController.DeleteDiscount)
			admin.PATCH("/discounts/:id/active", r.discountController.ToggleActive)

			admin.GET("/export/products", r.exportController.ExportProducts)
			admin.GET("/export/discounts", r.exportController.ExportDiscounts)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
