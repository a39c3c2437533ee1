package catalog

import "github.com/gin-gonic/gin"

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	kiosk := router.Group("/kiosk")
	{
		kiosk.GET("/menu", controller.GetMenu)                       // GET /api/v1/kiosk/menu - Full menu snapshot
		kiosk.GET("/products/:id/options", controller.GetProductOptions) // GET /api/v1/kiosk/products/:id/options - Variant groups for a product
	}
}
