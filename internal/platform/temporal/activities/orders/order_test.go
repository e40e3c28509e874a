package orders

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
)

func TestSignalErrorRoundTrip(t *testing.T) {
	signal := apierrors.BadRequest("Order must include a deliverTo")

	wrapped := fmt.Errorf("workflow failed: %w", SignalError(signal))
	got, ok := SignalFromError(wrapped)

	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, got.Status)
	require.Equal(t, "Order must include a deliverTo", got.Message)
}

func TestSignalFromErrorIgnoresOtherErrors(t *testing.T) {
	_, ok := SignalFromError(errors.New("connection refused"))
	require.False(t, ok)
}
