package orders

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kioskd/internal/bridge"
	"kioskd/internal/shared/utils/response"
)

type Controller interface {
	Checkout(c *gin.Context)
	GetOrder(c *gin.Context)
	SelectPaymentMethod(c *gin.Context)
	ConfirmPayment(c *gin.Context)
	CancelPayment(c *gin.Context)
	Back(c *gin.Context)
	ReceiptDone(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Checkout(c *gin.Context) {
	ref, err := ctrl.service.Checkout(c.Request.Context())
	if err != nil {
		respondOrderError(c, err, "Could not create order")
		return
	}
	response.OK(c, "Order created successfully", ref)
}

func (ctrl *controller) GetOrder(c *gin.Context) {
	order, err := ctrl.service.Snapshot(c.Request.Context())
	if err != nil {
		respondOrderError(c, err, "Could not load order")
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

func (ctrl *controller) SelectPaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.BindingErrors(err))
		return
	}

	if err := ctrl.service.SelectPaymentMethod(c.Request.Context(), req.Method); err != nil {
		respondOrderError(c, err, "Could not set payment method")
		return
	}
	response.OK(c, "Payment method selected", nil)
}

func (ctrl *controller) ConfirmPayment(c *gin.Context) {
	if err := ctrl.service.ConfirmAndPrint(c.Request.Context()); err != nil {
		respondOrderError(c, err, "Payment confirmation failed")
		return
	}
	response.OK(c, "Payment confirmed", nil)
}

func (ctrl *controller) CancelPayment(c *gin.Context) {
	if err := ctrl.service.CancelPayment(c.Request.Context()); err != nil {
		respondOrderError(c, err, "Could not cancel payment")
		return
	}
	response.OK(c, "Payment cancelled", nil)
}

func (ctrl *controller) Back(c *gin.Context) {
	if err := ctrl.service.Back(c.Request.Context()); err != nil {
		respondOrderError(c, err, "Could not go back")
		return
	}
	response.OK(c, "Returned to payment method selection", nil)
}

func (ctrl *controller) ReceiptDone(c *gin.Context) {
	ctrl.service.Done(c.Request.Context())
	response.OK(c, "Session finished", nil)
}

// respondOrderError maps the order flow error taxonomy onto HTTP statuses
func respondOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrNoServiceType),
		errors.Is(err, ErrNoActiveOrder),
		errors.Is(err, ErrBadMethod):
		response.BadRequest(c, err.Error(), nil)
	case errors.Is(err, ErrOrderCancelled):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case bridge.IsUnavailable(err):
		response.Unavailable(c, bridge.UserMessage(err, fallback))
	default:
		response.RespondJSON(c, "error", http.StatusBadGateway, bridge.UserMessage(err, fallback), nil, nil)
	}
}
