package validation

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
)

var errMissing = errors.New("missing")

type lookupRequest struct {
	fakeRequest
	routeID string
	found   string
}

func (p *lookupRequest) Body() Payload { return p.payload }

func lookupStep() Step[*lookupRequest] {
	store := map[string]string{"a1": "apple"}
	return Lookup(
		"Dish",
		func(p *lookupRequest) string { return p.routeID },
		func(_ context.Context, id string) (string, error) {
			if id == "boom" {
				return "", errors.New("connection reset")
			}
			v, ok := store[id]
			if !ok {
				return "", errMissing
			}
			return v, nil
		},
		errMissing,
		func(p *lookupRequest, v string) { p.found = v },
	)
}

func TestLookup_KeepsRecord(t *testing.T) {
	p := &lookupRequest{routeID: "a1"}
	require.NoError(t, lookupStep()(context.Background(), p))
	require.Equal(t, "apple", p.found)
}

func TestLookup_MissingRecord(t *testing.T) {
	err := lookupStep()(context.Background(), &lookupRequest{routeID: "zz"})

	var signal apierrors.Signal
	require.ErrorAs(t, err, &signal)
	require.Equal(t, http.StatusNotFound, signal.Status)
	require.Equal(t, "Dish does not exist: zz.", signal.Message)
}

func TestLookup_WrapsOtherErrors(t *testing.T) {
	err := lookupStep()(context.Background(), &lookupRequest{routeID: "boom"})

	require.Error(t, err)
	require.False(t, apierrors.IsClientError(err))
}

func TestMatchesRouteID(t *testing.T) {
	step := MatchesRouteID[*lookupRequest]("Order", func(*lookupRequest) string { return "o1" })

	for _, ok := range []Payload{{}, {"id": ""}, {"id": nil}, {"id": "o1"}} {
		require.NoError(t, step(context.Background(), &lookupRequest{fakeRequest: fakeRequest{payload: ok}}))
	}

	err := step(context.Background(), &lookupRequest{fakeRequest: fakeRequest{payload: Payload{"id": "o2"}}})
	require.EqualError(t, err, "Order id does not match route id. Order: o2, Route: o1")

	err = step(context.Background(), &lookupRequest{fakeRequest: fakeRequest{payload: Payload{"id": float64(5)}}})
	require.EqualError(t, err, "Order id does not match route id. Order: 5, Route: o1")
}
