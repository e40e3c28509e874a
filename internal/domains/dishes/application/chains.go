package application

import (
	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

const resource = "Dish"

// MsgInvalidPrice is returned for a missing, fractional or non-positive price.
const MsgInvalidPrice = "Dish must have a price that is an integer greater than 0"

// request is the value threaded through a dish chain.
type request struct {
	routeID string
	payload validation.Payload
	dish    *domain.Dish
}

func (r *request) Body() validation.Payload { return r.payload }

// fieldChain validates the create/update payload.
var fieldChain = validation.Chain[*request](validation.RequireAll[*request](resource, "name", "description", "price", "image_url")).
	Then(validation.NonEmptyAll[*request](resource, "name", "description", "image_url")...).
	Then(validation.PositiveInteger[*request]("price", MsgInvalidPrice))

// fieldsFrom reads a payload that already passed fieldChain.
func fieldsFrom(payload validation.Payload) domain.Fields {
	rawPrice, _ := payload.Get("price")
	price, _ := validation.Integer(rawPrice)
	return domain.Fields{
		Name:        payload.Text("name"),
		Description: payload.Text("description"),
		Price:       price,
		ImageURL:    payload.Text("image_url"),
	}
}
