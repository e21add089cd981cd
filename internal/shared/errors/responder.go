package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// RespondSuccess writes the success envelope, or an empty body for 204.
func RespondSuccess(c *gin.Context, status int, data any) {
	if status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.JSON(status, successEnvelope{Status: "success", Data: data})
}

// RespondError is the single terminal translator for pipeline errors. It
// reads status, message, and field errors off an APIError; anything else
// becomes a 500 with the underlying error text passed through verbatim.
func RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if !stderrors.As(err, &apiErr) {
		apiErr = ErrInternal.WithMessage(err.Error())
	}
	c.JSON(apiErr.Status, errorEnvelope{
		Status:  "error",
		Message: apiErr.Message,
		Errors:  apiErr.Errors,
	})
}
