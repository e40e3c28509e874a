package grubdashserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine and installs the
// unknown path and unsupported method handlers.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	responder := handleFunctions.responder()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) { responder.Respond(c, pathNotFound(c)) })
	router.NoMethod(func(c *gin.Context) { responder.Respond(c, methodNotAllowed(c)) })
	return router
}

// DefaultHandleFunc is the default handler for not yet implemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the dishes part of the API
	DishAPI DishAPI
	// Routes for the orders part of the API
	OrderAPI OrderAPI
}

func (h ApiHandleFunctions) responder() *apierrors.Responder {
	if h.DishAPI.responder != nil {
		return h.DishAPI.responder
	}
	if h.OrderAPI.responder != nil {
		return h.OrderAPI.responder
	}
	return NewErrorResponder(nil)
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListDishes",
			http.MethodGet,
			"/dishes",
			handleFunctions.DishAPI.ListDishes,
		},
		{
			"CreateDish",
			http.MethodPost,
			"/dishes",
			handleFunctions.DishAPI.CreateDish,
		},
		{
			"ReadDish",
			http.MethodGet,
			"/dishes/:dishId",
			handleFunctions.DishAPI.ReadDish,
		},
		{
			"UpdateDish",
			http.MethodPut,
			"/dishes/:dishId",
			handleFunctions.DishAPI.UpdateDish,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/orders",
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"ReadOrder",
			http.MethodGet,
			"/orders/:orderId",
			handleFunctions.OrderAPI.ReadOrder,
		},
		{
			"UpdateOrder",
			http.MethodPut,
			"/orders/:orderId",
			handleFunctions.OrderAPI.UpdateOrder,
		},
		{
			"DestroyOrder",
			http.MethodDelete,
			"/orders/:orderId",
			handleFunctions.OrderAPI.DestroyOrder,
		},
	}
}
