package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	dishmemory "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/memory"
	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	"github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

func sequenceIDs() idgen.Generator {
	n := 0
	return idgen.GeneratorFunc(func() string {
		n++
		return fmt.Sprintf("dish-%d", n)
	})
}

func validPayload() validation.Payload {
	return validation.Payload{
		"name":        "Pasta",
		"description": "Tasty",
		"price":       float64(12),
		"image_url":   "x",
	}
}

func requireSignal(t *testing.T, err error, status int, message string) {
	t.Helper()
	var signal apierrors.Signal
	require.ErrorAs(t, err, &signal)
	require.Equal(t, status, signal.Status)
	require.Equal(t, message, signal.Message)
}

func TestCreate_AssignsFreshIDAndKeepsPrice(t *testing.T) {
	repo := dishmemory.NewRepository()
	svc := NewService(repo, WithIDGenerator(sequenceIDs()))
	ctx := context.Background()

	first, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	require.Equal(t, "dish-1", first.ID)
	require.Equal(t, "dish-2", second.ID)
	require.Equal(t, int64(12), first.Price)
	require.Equal(t, "Pasta", first.Name)
	require.Equal(t, "x", first.ImageURL)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestCreate_DefaultGeneratorIssuesUniqueIDs(t *testing.T) {
	svc := NewService(dishmemory.NewRepository())
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		dish, err := svc.Create(context.Background(), validPayload())
		require.NoError(t, err)
		require.NotEmpty(t, dish.ID)
		require.False(t, seen[dish.ID])
		seen[dish.ID] = true
	}
}

func TestCreate_ValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(p validation.Payload)
		message string
	}{
		{"missing name", func(p validation.Payload) { delete(p, "name") }, "Dish must include a name"},
		{"empty name", func(p validation.Payload) { p["name"] = "" }, "Dish must include a name"},
		{"missing description", func(p validation.Payload) { delete(p, "description") }, "Dish must include a description"},
		{"missing price", func(p validation.Payload) { delete(p, "price") }, "Dish must include a price"},
		{"zero price", func(p validation.Payload) { p["price"] = float64(0) }, "Dish must include a price"},
		{"missing image", func(p validation.Payload) { delete(p, "image_url") }, "Dish must include a image_url"},
		{"negative price", func(p validation.Payload) { p["price"] = float64(-1) }, MsgInvalidPrice},
		{"fractional price", func(p validation.Payload) { p["price"] = 3.5 }, MsgInvalidPrice},
		{"string price", func(p validation.Payload) { p["price"] = "12" }, MsgInvalidPrice},
		{"name checked before price", func(p validation.Payload) { delete(p, "name"); p["price"] = "bad" }, "Dish must include a name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := dishmemory.NewRepository()
			svc := NewService(repo)
			payload := validPayload()
			tc.mutate(payload)

			_, err := svc.Create(context.Background(), payload)

			requireSignal(t, err, http.StatusBadRequest, tc.message)
			list, listErr := repo.List(context.Background())
			require.NoError(t, listErr)
			require.Empty(t, list)
		})
	}
}

func TestCreate_NonStringTextFieldsAreRendered(t *testing.T) {
	svc := NewService(dishmemory.NewRepository(), WithIDGenerator(sequenceIDs()))
	payload := validPayload()
	payload["name"] = float64(5)
	payload["description"] = true

	dish, err := svc.Create(context.Background(), payload)

	require.NoError(t, err)
	require.Equal(t, "5", dish.Name)
	require.Equal(t, "true", dish.Description)
}

func TestRead(t *testing.T) {
	svc := NewService(dishmemory.NewRepository(), WithIDGenerator(sequenceIDs()))
	created, err := svc.Create(context.Background(), validPayload())
	require.NoError(t, err)

	got, err := svc.Read(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = svc.Read(context.Background(), "missing-id")
	requireSignal(t, err, http.StatusNotFound, "Dish does not exist: missing-id.")
}

func TestUpdate_OverwritesFieldsButNotID(t *testing.T) {
	svc := NewService(dishmemory.NewRepository(), WithIDGenerator(sequenceIDs()))
	ctx := context.Background()
	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	payload := validation.Payload{
		"id":          created.ID,
		"name":        "Risotto",
		"description": "Creamy",
		"price":       float64(20),
		"image_url":   "y",
	}
	updated, err := svc.Update(ctx, created.ID, payload)
	require.NoError(t, err)
	require.Equal(t, &domain.Dish{ID: created.ID, Name: "Risotto", Description: "Creamy", Price: 20, ImageURL: "y"}, updated)

	stored, err := svc.Read(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, stored)
}

func TestUpdate_WithoutPayloadIDSucceeds(t *testing.T) {
	svc := NewService(dishmemory.NewRepository(), WithIDGenerator(sequenceIDs()))
	created, err := svc.Create(context.Background(), validPayload())
	require.NoError(t, err)

	payload := validPayload()
	payload["id"] = ""
	_, err = svc.Update(context.Background(), created.ID, payload)
	require.NoError(t, err)
}

func TestUpdate_MismatchedIDLeavesRecordUntouched(t *testing.T) {
	svc := NewService(dishmemory.NewRepository(), WithIDGenerator(sequenceIDs()))
	ctx := context.Background()
	created, err := svc.Create(ctx, validPayload())
	require.NoError(t, err)

	payload := validPayload()
	payload["id"] = "other"
	payload["name"] = "Changed"
	_, err = svc.Update(ctx, created.ID, payload)

	requireSignal(t, err, http.StatusBadRequest, "Dish id does not match route id. Dish: other, Route: dish-1")
	stored, err := svc.Read(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Pasta", stored.Name)
}

func TestUpdate_UnknownDish(t *testing.T) {
	svc := NewService(dishmemory.NewRepository())
	_, err := svc.Update(context.Background(), "nope", validPayload())
	requireSignal(t, err, http.StatusNotFound, "Dish does not exist: nope.")
}

func TestUpdate_LookupRunsBeforeFieldChecks(t *testing.T) {
	svc := NewService(dishmemory.NewRepository())
	_, err := svc.Update(context.Background(), "nope", validation.Payload{})
	requireSignal(t, err, http.StatusNotFound, "Dish does not exist: nope.")
}

type failingRepo struct{ ports.Repository }

func (failingRepo) Save(context.Context, *domain.Dish) (*domain.Dish, error) {
	return nil, errors.New("disk full")
}

func TestCreate_WrapsRepositoryErrors(t *testing.T) {
	svc := NewService(failingRepo{Repository: dishmemory.NewRepository()})
	_, err := svc.Create(context.Background(), validPayload())
	require.Error(t, err)
	require.False(t, apierrors.IsClientError(err))
}
