package orders

import "github.com/gin-gonic/gin"

func SetupOrderRoutes(router *gin.RouterGroup, controller Controller) {
	kiosk := router.Group("/kiosk")
	{
		kiosk.POST("/checkout", controller.Checkout) // POST /api/v1/kiosk/checkout - Submit cart as an order
		kiosk.GET("/order", controller.GetOrder)     // GET /api/v1/kiosk/order - Authoritative order snapshot

		payment := kiosk.Group("/payment")
		{
			payment.POST("/method", controller.SelectPaymentMethod) // POST /api/v1/kiosk/payment/method - Choose counter or QR
			payment.POST("/confirm", controller.ConfirmPayment)     // POST /api/v1/kiosk/payment/confirm - Settle and print
			payment.POST("/cancel", controller.CancelPayment)       // POST /api/v1/kiosk/payment/cancel - Abandon the order
			payment.POST("/back", controller.Back)                  // POST /api/v1/kiosk/payment/back - Back to method selection
		}

		kiosk.POST("/receipt/done", controller.ReceiptDone) // POST /api/v1/kiosk/receipt/done - Finish on the receipt screen
	}
}
