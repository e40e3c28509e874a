// Package seed loads initial dishes and orders from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	dishdomain "github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	dishports "github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
)

// File is the document layout of a seed file.
type File struct {
	Dishes []Dish  `yaml:"dishes"`
	Orders []Order `yaml:"orders"`
}

type Dish struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
	ImageURL    string `yaml:"image_url"`
}

type Order struct {
	ID           string `yaml:"id"`
	DeliverTo    string `yaml:"deliverTo"`
	MobileNumber string `yaml:"mobileNumber"`
	Status       string `yaml:"status"`
	Dishes       []Line `yaml:"dishes"`
}

type Line struct {
	DishID   string `yaml:"dishId"`
	Quantity int64  `yaml:"quantity"`
}

// Result counts the records written by Apply.
type Result struct {
	Dishes int
	Orders int
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a seed document. Unknown keys are rejected; an empty document yields an empty file.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &file, nil
}

// Apply saves every seeded record in file order. Entries without an id get one from ids.
func Apply(ctx context.Context, file *File, dishes dishports.Repository, orders orderports.Repository, ids idgen.Generator) (Result, error) {
	var result Result
	if file == nil {
		return result, nil
	}
	if ids == nil {
		ids = idgen.Default
	}
	for _, entry := range file.Dishes {
		dish := dishdomain.New(orGenerated(entry.ID, ids), dishdomain.Fields{
			Name:        entry.Name,
			Description: entry.Description,
			Price:       entry.Price,
			ImageURL:    entry.ImageURL,
		})
		if _, err := dishes.Save(ctx, dish); err != nil {
			return result, fmt.Errorf("seed dish %s: %w", dish.ID, err)
		}
		result.Dishes++
	}
	for _, entry := range file.Orders {
		lines := make([]orderdomain.Line, 0, len(entry.Dishes))
		for _, line := range entry.Dishes {
			lines = append(lines, orderdomain.Line{DishID: line.DishID, Quantity: line.Quantity})
		}
		order := orderdomain.New(orGenerated(entry.ID, ids), orderdomain.Fields{
			DeliverTo:    entry.DeliverTo,
			MobileNumber: entry.MobileNumber,
			Status:       orderdomain.Status(entry.Status),
			Dishes:       lines,
		})
		if _, err := orders.Save(ctx, order); err != nil {
			return result, fmt.Errorf("seed order %s: %w", order.ID, err)
		}
		result.Orders++
	}
	return result, nil
}

func orGenerated(id string, ids idgen.Generator) string {
	if id != "" {
		return id
	}
	return ids.NewID()
}
