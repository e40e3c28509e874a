package validation

import (
	"context"
	"errors"
	"fmt"

	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
)

// Lookup loads the record addressed by the route id and hands it to keep for later steps.
// An error matching missing becomes `<Resource> does not exist: <id>.`; other errors are wrapped and returned.
func Lookup[R any, T any](
	resource string,
	routeID func(R) string,
	find func(ctx context.Context, id string) (T, error),
	missing error,
	keep func(R, T),
) Step[R] {
	return func(ctx context.Context, req R) error {
		id := routeID(req)
		record, err := find(ctx, id)
		if errors.Is(err, missing) {
			return apierrors.NotFound("%s does not exist: %s.", resource, id)
		}
		if err != nil {
			return fmt.Errorf("load %s %s: %w", resource, id, err)
		}
		keep(req, record)
		return nil
	}
}

// MatchesRouteID fails when the payload carries a truthy `id` different from the stored record id.
func MatchesRouteID[R Request](resource string, currentID func(R) string) Step[R] {
	return func(_ context.Context, req R) error {
		v, _ := req.Body().Get("id")
		if !Truthy(v) {
			return nil
		}
		current := currentID(req)
		if s, ok := v.(string); ok && s == current {
			return nil
		}
		return apierrors.BadRequest("%s id does not match route id. %s: %v, Route: %s", resource, resource, v, current)
	}
}
