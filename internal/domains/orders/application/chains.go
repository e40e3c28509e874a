package application

import (
	"context"
	"strings"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

const resource = "Order"

// Messages for the order-specific checks.
const (
	MsgMissingDish    = "Order must include a dish"
	MsgEmptyDishes    = "Order must include at least one dish"
	MsgInvalidQty     = "Dish %d must have a quantity that is an integer greater than 0"
	MsgDeliveredLock  = "A delivered order cannot be changed"
	MsgDeleteNotReady = "An order cannot be deleted unless it is pending"
)

// MsgInvalidStatus names every lifecycle state.
var MsgInvalidStatus = "Order must have a status of " + joinStatuses(domain.Statuses, ", ")

func joinStatuses(statuses []domain.Status, sep string) string {
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return strings.Join(names, sep)
}

// request is the value threaded through an order chain.
type request struct {
	routeID string
	payload validation.Payload
	order   *domain.Order
}

func (r *request) Body() validation.Payload { return r.payload }

// lines returns the dishes array once dishesShape accepted it.
func (r *request) lines() []any {
	v, _ := r.payload.Get("dishes")
	lines, _ := v.([]any)
	return lines
}

// fieldChain validates the create/update payload.
var fieldChain = validation.Chain[*request](validation.RequireAll[*request](resource, "deliverTo", "mobileNumber")).
	Then(validation.NonEmptyAll[*request](resource, "deliverTo", "mobileNumber")...).
	Then(dishesShape, quantities)

func dishesShape(_ context.Context, r *request) error {
	v, _ := r.payload.Get("dishes")
	if !validation.Truthy(v) {
		return apierrors.BadRequest(MsgMissingDish)
	}
	if lines, ok := v.([]any); !ok || len(lines) == 0 {
		return apierrors.BadRequest(MsgEmptyDishes)
	}
	return nil
}

// quantities reports the first line whose quantity is missing, fractional or not positive.
func quantities(_ context.Context, r *request) error {
	for i, entry := range r.lines() {
		line, _ := entry.(map[string]any)
		if n, ok := validation.Integer(line["quantity"]); !ok || n <= 0 {
			return apierrors.BadRequest(MsgInvalidQty, i)
		}
	}
	return nil
}

// statusCheck inspects the submitted status, never the stored one.
func statusCheck(_ context.Context, r *request) error {
	v, _ := r.payload.Get("status")
	status, ok := v.(string)
	if !ok || status == "" || status == "invalid" {
		return apierrors.BadRequest("%s", MsgInvalidStatus)
	}
	if domain.Status(status) == domain.StatusDelivered {
		return apierrors.BadRequest(MsgDeliveredLock)
	}
	return nil
}

// pending reads the stored status found by the lookup step.
func pending(_ context.Context, r *request) error {
	if !r.order.Deletable() {
		return apierrors.BadRequest(MsgDeleteNotReady)
	}
	return nil
}

// fieldsFrom reads a payload that already passed fieldChain.
func fieldsFrom(payload validation.Payload) domain.Fields {
	status, _ := payload.String("status")
	raw, _ := payload.Get("dishes")
	entries, _ := raw.([]any)
	lines := make([]domain.Line, 0, len(entries))
	for _, entry := range entries {
		line, _ := entry.(map[string]any)
		quantity, _ := validation.Integer(line["quantity"])
		lines = append(lines, domain.Line{DishID: validation.Text(line["dishId"]), Quantity: quantity})
	}
	return domain.Fields{
		DeliverTo:    payload.Text("deliverTo"),
		MobileNumber: payload.Text("mobileNumber"),
		Status:       domain.Status(status),
		Dishes:       lines,
	}
}
