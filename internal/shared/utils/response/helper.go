package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// OK responds with a success envelope and HTTP 200
func OK(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, "success", http.StatusOK, message, data, nil)
}

// BadRequest responds with an error envelope and HTTP 400
func BadRequest(c *gin.Context, message string, errs interface{}) {
	RespondJSON(c, "error", http.StatusBadRequest, message, nil, errs)
}

// Unavailable responds with an error envelope and HTTP 503 (bridge down)
func Unavailable(c *gin.Context, message string) {
	RespondJSON(c, "error", http.StatusServiceUnavailable, message, nil, nil)
}

// BindingErrors flattens a binding failure into field -> constraint details.
// Non-validation errors (malformed JSON) come back as a plain string.
func BindingErrors(err error) interface{} {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fields
	}
	return err.Error()
}
