package kiosk

import "github.com/gin-gonic/gin"

func SetupKioskRoutes(router *gin.RouterGroup, controller Controller) {
	kiosk := router.Group("/kiosk")
	{
		kiosk.GET("/state", controller.GetState)       // GET /api/v1/kiosk/state - Full UI snapshot
		kiosk.POST("/activity", controller.Activity)   // POST /api/v1/kiosk/activity - Customer interaction signal
		kiosk.POST("/navigate", controller.Navigate)   // POST /api/v1/kiosk/navigate - Change screen
		kiosk.POST("/order-now", controller.OrderNow)  // POST /api/v1/kiosk/order-now - Start a session
		kiosk.POST("/service", controller.SelectService) // POST /api/v1/kiosk/service - dine_in or take_away

		kiosk.POST("/product", controller.OpenProduct) // POST /api/v1/kiosk/product - Open variant screen

		cartGroup := kiosk.Group("/cart")
		{
			cartGroup.POST("/lines", controller.CommitLine)                // POST /api/v1/kiosk/cart/lines - Place composed line
			cartGroup.POST("/lines/:index/quantity", controller.AdjustQty) // POST /api/v1/kiosk/cart/lines/:index/quantity - Quantity delta
			cartGroup.DELETE("/lines/:index", controller.RemoveLine)       // DELETE /api/v1/kiosk/cart/lines/:index - Remove line
			cartGroup.POST("/lines/:index/edit", controller.EditLine)      // POST /api/v1/kiosk/cart/lines/:index/edit - Re-open a line for editing
		}
	}
}
