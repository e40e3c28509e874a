package grubdashserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
	responder *apierrors.Responder
}

// NewOrderAPI creates an OrderAPI. Creation goes through workflows when one is given.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator, responder *apierrors.Responder) OrderAPI {
	if responder == nil {
		responder = NewErrorResponder(nil)
	}
	return OrderAPI{service: service, workflows: workflows, responder: responder}
}

// Get /orders
// List every order
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, fromOrders(orders))
}

// Post /orders
// Place an order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	order, err := api.createOrder(c.Request.Context(), payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, fromOrder(order))
}

func (api *OrderAPI) createOrder(ctx context.Context, payload validation.Payload) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, payload)
	}
	return api.service.Create(ctx, payload)
}

// Get /orders/:orderId
// Read an order
func (api *OrderAPI) ReadOrder(c *gin.Context) {
	order, err := api.service.Read(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, fromOrder(order))
}

// Put /orders/:orderId
// Update an order
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	order, err := api.service.Update(c.Request.Context(), c.Param("orderId"), payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, fromOrder(order))
}

// Delete /orders/:orderId
// Delete a pending order
func (api *OrderAPI) DestroyOrder(c *gin.Context) {
	if err := api.service.Destroy(c.Request.Context(), c.Param("orderId")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondNoContent(c)
}
