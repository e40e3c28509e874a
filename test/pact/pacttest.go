//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "grubdash-api"
	ConsumerName = "grubdash-web"

	StateDishesBaseline = "dishes baseline"
	StateDishExists     = "dish with id 3c637d011d844ebab1205fef8a7e36ea exists"
	StateDishMissing    = "no dish with id missing-dish"
	StateOrdersBaseline = "orders baseline"
	StatePendingOrder   = "pending order with id f6069a542257054114138301947672ba exists"
	StateDeliveredOrder = "delivered order with id 5a887d326e83d3c5bdcbee398ea32aff exists"
)

const (
	ExistingDishID   = "3c637d011d844ebab1205fef8a7e36ea"
	MissingDishID    = "missing-dish"
	PendingOrderID   = "f6069a542257054114138301947672ba"
	DeliveredOrderID = "5a887d326e83d3c5bdcbee398ea32aff"
)

// ExampleDish is the stable dish used across interactions.
func ExampleDish() map[string]any {
	return map[string]any{
		"id":          ExistingDishID,
		"name":        "Broccoli and beetroot stir fry",
		"description": "Crunchy stir fry featuring fresh broccoli and beetroot",
		"price":       15,
		"image_url":   "https://images.pexels.com/photos/4144234/pexels-photo-4144234.jpeg",
	}
}

// ExampleOrder is the stable order used across interactions.
func ExampleOrder(id, status string) map[string]any {
	return map[string]any{
		"id":           id,
		"deliverTo":    "1600 Pennsylvania Avenue NW, Washington, DC 20500",
		"mobileNumber": "(202) 456-1111",
		"status":       status,
		"dishes": []map[string]any{
			{"dishId": ExistingDishID, "quantity": 2},
		},
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
