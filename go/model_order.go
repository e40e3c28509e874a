package grubdashserver

import orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"

// Order is the wire representation of a customer order.
type Order struct {
	Id           string      `json:"id"`
	DeliverTo    string      `json:"deliverTo"`
	MobileNumber string      `json:"mobileNumber"`
	Status       string      `json:"status,omitempty"`
	Dishes       []OrderDish `json:"dishes"`
}

// OrderDish is one line of an order.
type OrderDish struct {
	DishId   string `json:"dishId"`
	Quantity int64  `json:"quantity"`
}

func fromOrder(o *orderdomain.Order) Order {
	dishes := make([]OrderDish, 0, len(o.Dishes))
	for _, line := range o.Dishes {
		dishes = append(dishes, OrderDish{DishId: line.DishID, Quantity: line.Quantity})
	}
	return Order{
		Id:           o.ID,
		DeliverTo:    o.DeliverTo,
		MobileNumber: o.MobileNumber,
		Status:       string(o.Status),
		Dishes:       dishes,
	}
}

func fromOrders(list []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(list))
	for _, o := range list {
		result = append(result, fromOrder(o))
	}
	return result
}
