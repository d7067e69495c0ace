package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/actions"
	"storefront/handlers"
	"storefront/middleware"
)

func SetupRouters(deps *actions.Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.Use(middleware.AuthMiddleware(deps.Sessions))
	{
		// Storefront browsing and the anonymous cart need no session.
		router.GET("/api/v1/products", func(c *gin.Context) {
			handlers.ListProductsHandler(c, deps)
		})
		router.GET("/api/v1/products/featured", func(c *gin.Context) {
			handlers.ListFeaturedProductsHandler(c, deps)
		})
		router.GET("/api/v1/products/:slug", func(c *gin.Context) {
			handlers.GetProductHandler(c, deps)
		})
		router.GET("/api/v1/products/:slug/reviews", func(c *gin.Context) {
			handlers.ListProductReviewsHandler(c, deps)
		})
		router.POST("/api/v1/sign-up", func(c *gin.Context) {
			handlers.SignUpHandler(c, deps)
		})
		router.POST("/api/v1/sign-in", func(c *gin.Context) {
			handlers.SignInHandler(c, deps)
		})
		router.GET("/api/v1/cart", func(c *gin.Context) {
			handlers.GetCartHandler(c, deps)
		})
		router.POST("/api/v1/cart/items", func(c *gin.Context) {
			handlers.AddToCartHandler(c, deps)
		})
		router.DELETE("/api/v1/cart/items/:productID", func(c *gin.Context) {
			handlers.RemoveFromCartHandler(c, deps)
		})

		// Signed-in routes.
		loginRequired := router.Group("/api/v1/user")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.POST("/sign-out", func(c *gin.Context) {
				handlers.SignOutHandler(c, deps)
			})
			loginRequired.GET("/profile", func(c *gin.Context) {
				handlers.GetProfileHandler(c, deps)
			})
			loginRequired.PATCH("/profile", func(c *gin.Context) {
				handlers.UpdateProfileHandler(c, deps)
			})
			loginRequired.PUT("/address", func(c *gin.Context) {
				handlers.UpdateAddressHandler(c, deps)
			})
			loginRequired.PUT("/payment-method", func(c *gin.Context) {
				handlers.UpdatePaymentMethodHandler(c, deps)
			})
			loginRequired.POST("/orders", func(c *gin.Context) {
				handlers.PlaceOrderHandler(c, deps)
			})
			loginRequired.GET("/orders", func(c *gin.Context) {
				handlers.ListMyOrdersHandler(c, deps)
			})
			loginRequired.GET("/orders/:orderID", func(c *gin.Context) {
				handlers.GetOrderHandler(c, deps)
			})
			loginRequired.POST("/orders/:orderID/capture", func(c *gin.Context) {
				handlers.CapturePaymentHandler(c, deps)
			})
			loginRequired.POST("/reviews", func(c *gin.Context) {
				handlers.UpsertReviewHandler(c, deps)
			})
		}

		// Back-office routes.
		adminRequired := router.Group("/api/v1/admin")
		adminRequired.Use(middleware.CheckAdminPermissionMiddleware())
		{
			adminRequired.GET("/users", func(c *gin.Context) {
				handlers.ListUsersHandler(c, deps)
			})
			adminRequired.GET("/users/:userID", func(c *gin.Context) {
				handlers.GetUserHandler(c, deps)
			})
			adminRequired.PATCH("/users/:userID", func(c *gin.Context) {
				handlers.UpdateUserHandler(c, deps)
			})
			adminRequired.DELETE("/users/:userID", func(c *gin.Context) {
				handlers.DeleteUserHandler(c, deps)
			})
			adminRequired.GET("/products", func(c *gin.Context) {
				handlers.ListProductsHandler(c, deps)
			})
			adminRequired.POST("/products", func(c *gin.Context) {
				handlers.CreateProductHandler(c, deps)
			})
			adminRequired.PATCH("/products/:productID", func(c *gin.Context) {
				handlers.UpdateProductHandler(c, deps)
			})
			adminRequired.DELETE("/products/:productID", func(c *gin.Context) {
				handlers.DeleteProductHandler(c, deps)
			})
			adminRequired.GET("/orders", func(c *gin.Context) {
				handlers.ListOrdersHandler(c, deps)
			})
			adminRequired.PATCH("/orders/:orderID/pay", func(c *gin.Context) {
				handlers.MarkOrderPaidHandler(c, deps)
			})
			adminRequired.PATCH("/orders/:orderID/deliver", func(c *gin.Context) {
				handlers.MarkOrderDeliveredHandler(c, deps)
			})
			adminRequired.DELETE("/orders/:orderID", func(c *gin.Context) {
				handlers.DeleteOrderHandler(c, deps)
			})
		}
	}

	return router
}
