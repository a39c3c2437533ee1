package kiosk

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kioskd/internal/bridge"
	"kioskd/internal/catalog"
	"kioskd/internal/shared/utils/response"
	"kioskd/internal/state"
)

type Controller interface {
	GetState(c *gin.Context)
	Activity(c *gin.Context)
	Navigate(c *gin.Context)
	OrderNow(c *gin.Context)
	SelectService(c *gin.Context)
	OpenProduct(c *gin.Context)
	CommitLine(c *gin.Context)
	AdjustQty(c *gin.Context)
	RemoveLine(c *gin.Context)
	EditLine(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetState(c *gin.Context) {
	response.OK(c, "State retrieved successfully", ctrl.service.State())
}

func (ctrl *controller) Activity(c *gin.Context) {
	ctrl.service.Activity(c.Request.Context())
	response.OK(c, "Activity registered", ctrl.service.State())
}

func (ctrl *controller) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.BindingErrors(err))
		return
	}

	applied := ctrl.service.Navigate(c.Request.Context(), state.Route(req.Route))
	response.OK(c, "Navigated", gin.H{"route": applied})
}

func (ctrl *controller) OrderNow(c *gin.Context) {
	if err := ctrl.service.OrderNow(c.Request.Context()); err != nil {
		if bridge.IsUnavailable(err) {
			response.Unavailable(c, bridge.UserMessage(err, "Could not start session"))
			return
		}
		response.RespondJSON(c, "error", http.StatusBadGateway, bridge.UserMessage(err, "Could not start session"), nil, nil)
		return
	}
	response.OK(c, "Session started", ctrl.service.State())
}

func (ctrl *controller) SelectService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.BindingErrors(err))
		return
	}

	if err := ctrl.service.SelectService(c.Request.Context(), req.ServiceType); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}
	response.OK(c, "Service type selected", nil)
}

func (ctrl *controller) OpenProduct(c *gin.Context) {
	var req OpenProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.BindingErrors(err))
		return
	}

	if err := ctrl.service.OpenProduct(c.Request.Context(), req.ProductID); err != nil {
		respondFlowError(c, err, "Could not open product")
		return
	}
	response.OK(c, "Product opened", nil)
}

func (ctrl *controller) CommitLine(c *gin.Context) {
	var req CommitLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.BindingErrors(err))
		return
	}

	if err := ctrl.service.CommitLine(c.Request.Context(), req.ProductID, req.Qty, req.VariantValueIDs); err != nil {
		respondFlowError(c, err, "Could not add to cart")
		return
	}
	response.OK(c, "Cart updated", ctrl.service.State())
}

func (ctrl *controller) AdjustQty(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid cart index", err.Error())
		return
	}

	var req QtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", response.BindingErrors(err))
		return
	}

	if err := ctrl.service.AdjustQty(index, req.Delta); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}
	response.OK(c, "Cart updated", ctrl.service.State())
}

func (ctrl *controller) RemoveLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid cart index", err.Error())
		return
	}

	if err := ctrl.service.RemoveLine(index); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}
	response.OK(c, "Cart updated", ctrl.service.State())
}

func (ctrl *controller) EditLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid cart index", err.Error())
		return
	}

	if err := ctrl.service.EditLine(c.Request.Context(), index); err != nil {
		response.BadRequest(c, err.Error(), nil)
		return
	}
	response.OK(c, "Editing cart line", ctrl.service.State())
}

// respondFlowError maps screen flow errors onto HTTP statuses. Selection
// validation messages ("please select ...") surface as plain bad requests.
func respondFlowError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrBadCartIndex), errors.Is(err, ErrBadServiceType):
		response.BadRequest(c, err.Error(), nil)
	case strings.HasPrefix(err.Error(), "please select "):
		response.BadRequest(c, err.Error(), nil)
	case bridge.IsUnavailable(err):
		response.Unavailable(c, bridge.UserMessage(err, fallback))
	default:
		response.RespondJSON(c, "error", http.StatusBadGateway, bridge.UserMessage(err, fallback), nil, nil)
	}
}
