package grubdashserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dishports "github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
)

// DishAPI wires HTTP transport with the dishes bounded context service.
type DishAPI struct {
	service   dishports.Service
	responder *apierrors.Responder
}

// NewDishAPI creates a DishAPI backed by the provided service. A nil responder uses NewErrorResponder(nil).
func NewDishAPI(service dishports.Service, responder *apierrors.Responder) DishAPI {
	if responder == nil {
		responder = NewErrorResponder(nil)
	}
	return DishAPI{service: service, responder: responder}
}

// Get /dishes
// List every dish
func (api *DishAPI) ListDishes(c *gin.Context) {
	dishes, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, fromDishes(dishes))
}

// Post /dishes
// Create a dish
func (api *DishAPI) CreateDish(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	dish, err := api.service.Create(c.Request.Context(), payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, fromDish(dish))
}

// Get /dishes/:dishId
// Read a dish
func (api *DishAPI) ReadDish(c *gin.Context) {
	dish, err := api.service.Read(c.Request.Context(), c.Param("dishId"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, fromDish(dish))
}

// Put /dishes/:dishId
// Update a dish
func (api *DishAPI) UpdateDish(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	dish, err := api.service.Update(c.Request.Context(), c.Param("dishId"), payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	respondData(c, http.StatusOK, fromDish(dish))
}
