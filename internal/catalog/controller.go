package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kioskd/internal/bridge"
	"kioskd/internal/shared/utils/response"
)

type Controller interface {
	GetMenu(c *gin.Context)
	GetProductOptions(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetMenu(c *gin.Context) {
	menu, err := ctrl.service.Menu(c.Request.Context())
	if err != nil {
		if bridge.IsUnavailable(err) {
			response.Unavailable(c, bridge.UserMessage(err, "Menu unavailable"))
			return
		}
		response.RespondJSON(c, "error", http.StatusBadGateway, bridge.UserMessage(err, "Menu unavailable"), nil, nil)
		return
	}

	response.OK(c, "Menu retrieved successfully", menu)
}

func (ctrl *controller) GetProductOptions(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid product ID", err.Error())
		return
	}

	options, err := ctrl.service.ProductOptions(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Product not found", nil, nil)
			return
		}
		if bridge.IsUnavailable(err) {
			response.Unavailable(c, bridge.UserMessage(err, "Menu unavailable"))
			return
		}
		response.RespondJSON(c, "error", http.StatusBadGateway, bridge.UserMessage(err, "Menu unavailable"), nil, nil)
		return
	}

	response.OK(c, "Product options retrieved successfully", options)
}
