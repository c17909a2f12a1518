package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stockroom/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	productHandler *handlers.ProductHandler,
	resetHandler *handlers.PasswordResetHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	authMiddleware gin.HandlerFunc,
) *gin.Engine {

	// ---- service
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ---- inventory
	r.POST("/add_product", productHandler.Create)
	r.GET("/get_products", productHandler.List)
	r.GET("/get_product/:id_or_name", productHandler.Get)
	r.DELETE("/delete_product/:id", productHandler.Delete)

	// ---- password reset
	r.POST("/reset_request", resetHandler.RequestReset)
	r.POST("/validate_code", resetHandler.ValidateCode)
	r.POST("/password_reset", resetHandler.ResetPassword)

	// ---- accounts
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/me", authMiddleware, authHandler.Me)

	// ---- reports
	reports := r.Group("/reports", authMiddleware)
	{
		reports.GET("/summary", reportHandler.GetSummary)
		reports.GET("/inventory.pdf", reportHandler.InventoryPDF)
	}

	return r
}
