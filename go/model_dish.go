package grubdashserver

import dishdomain "github.com/Apurer/grubdash-api/internal/domains/dishes/domain"

// Dish is the wire representation of a menu item.
type Dish struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageUrl    string `json:"image_url"`
}

func fromDish(d *dishdomain.Dish) Dish {
	return Dish{
		Id:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		ImageUrl:    d.ImageURL,
	}
}

func fromDishes(list []*dishdomain.Dish) []Dish {
	result := make([]Dish, 0, len(list))
	for _, d := range list {
		result = append(result, fromDish(d))
	}
	return result
}
