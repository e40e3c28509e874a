package domain

// Dish is an item on the menu.
type Dish struct {
	ID          string
	Name        string
	Description string
	Price       int64
	ImageURL    string
}

// Fields holds the mutable part of a dish.
type Fields struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
}

// New builds a dish with the given identifier.
func New(id string, fields Fields) *Dish {
	d := &Dish{ID: id}
	d.Overwrite(fields)
	return d
}

// Overwrite replaces every mutable field. The identifier is never touched.
func (d *Dish) Overwrite(fields Fields) {
	d.Name = fields.Name
	d.Description = fields.Description
	d.Price = fields.Price
	d.ImageURL = fields.ImageURL
}

// Clone returns an independent copy.
func (d *Dish) Clone() *Dish {
	if d == nil {
		return nil
	}
	copy := *d
	return &copy
}
