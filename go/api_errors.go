package grubdashserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	dishports "github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// NewErrorResponder builds the responder shared by the handlers. Repository sentinels that escape a
// service map to 404; anything else that is not a signal is logged and answered with 500.
func NewErrorResponder(logger *slog.Logger) *apierrors.Responder {
	responder := apierrors.NewResponder(
		apierrors.MapSentinel(dishports.ErrNotFound, apierrors.ErrNotFound.WithMessage("Dish not found")),
		apierrors.MapSentinel(orderports.ErrNotFound, apierrors.ErrNotFound.WithMessage("Order not found")),
	)
	if logger != nil {
		return responder.WithLogger(logger)
	}
	return responder
}

func pathNotFound(c *gin.Context) apierrors.Signal {
	return apierrors.NotFound("Path not found: %s", c.Request.URL.RequestURI())
}

func methodNotAllowed(c *gin.Context) apierrors.Signal {
	return apierrors.ErrMethodNotAllowed.WithMessage(c.Request.Method + " not allowed for " + c.Request.URL.RequestURI())
}

// bindPayload extracts the `data` object of a request body. An empty body, a body without `data`,
// or a `data` value that is not an object yields an empty payload. Malformed JSON is a 400.
func bindPayload(c *gin.Context) (validation.Payload, error) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.Payload{}, nil
		}
		return nil, apierrors.ErrBadRequest.WithMessage(err.Error())
	}
	envelope, _ := body.(map[string]any)
	data, _ := envelope["data"].(map[string]any)
	if data == nil {
		return validation.Payload{}, nil
	}
	return validation.Payload(data), nil
}

type dataResponse struct {
	Data any `json:"data"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataResponse{Data: data})
}

func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
