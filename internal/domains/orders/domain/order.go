package domain

// Status enumerates order progression.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
)

// Statuses lists the lifecycle states in order.
var Statuses = []Status{StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered}

// Line is one dish entry of an order.
type Line struct {
	DishID   string
	Quantity int64
}

// Order models a customer order.
type Order struct {
	ID           string
	DeliverTo    string
	MobileNumber string
	Status       Status
	Dishes       []Line
}

// Fields holds the mutable part of an order.
type Fields struct {
	DeliverTo    string
	MobileNumber string
	Status       Status
	Dishes       []Line
}

// New builds an order with the given identifier.
func New(id string, fields Fields) *Order {
	o := &Order{ID: id}
	o.Overwrite(fields)
	return o
}

// Overwrite replaces every mutable field. The identifier is never touched.
func (o *Order) Overwrite(fields Fields) {
	o.DeliverTo = fields.DeliverTo
	o.MobileNumber = fields.MobileNumber
	o.Status = fields.Status
	o.Dishes = cloneLines(fields.Dishes)
}

// Deletable reports whether the order may be removed.
func (o *Order) Deletable() bool {
	return o != nil && o.Status == StatusPending
}

// Clone returns an independent copy, including the dish lines.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	copy := *o
	copy.Dishes = cloneLines(o.Dishes)
	return &copy
}

func cloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
