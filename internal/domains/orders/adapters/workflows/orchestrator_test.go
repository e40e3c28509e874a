package workflows

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/mocks"

	ordermemory "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/grubdash-api/internal/domains/orders/application"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

func TestInlineOrderWorkflows_DelegatesToService(t *testing.T) {
	orchestrator := NewInlineOrderWorkflows(orderapp.NewService(ordermemory.NewRepository()))

	order, err := orchestrator.CreateOrder(context.Background(), validation.Payload{
		"deliverTo":    "Rick",
		"mobileNumber": "555",
		"dishes":       []any{map[string]any{"dishId": "d1", "quantity": float64(1)}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)

	_, err = orchestrator.CreateOrder(context.Background(), validation.Payload{})
	var signal apierrors.Signal
	require.ErrorAs(t, err, &signal)
	assert.Equal(t, http.StatusBadRequest, signal.Status)
}

func TestNilOrchestratorsFail(t *testing.T) {
	_, err := (*InlineOrderWorkflows)(nil).CreateOrder(context.Background(), nil)
	assert.Error(t, err)
	_, err = NewTemporalOrderWorkflows(nil).CreateOrder(context.Background(), nil)
	assert.Error(t, err)
}

func TestWorkflowIDCarriesTraceID(t *testing.T) {
	traceID, err := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := oteltrace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	id := buildOrderCreationWorkflowID(workflowTraceID(ctx))
	assert.True(t, strings.HasPrefix(id, "order-creation-"))
	assert.True(t, strings.HasSuffix(id, "-4bf92f3577b34da6a3ce929d0e0e4736"))

	assert.Empty(t, workflowTraceID(context.Background()))
	assert.NotEqual(t, buildOrderCreationWorkflowID(""), buildOrderCreationWorkflowID(""))
}

func TestTemporalOrderWorkflows_FallsBackWhenFrontendUnavailable(t *testing.T) {
	temporalClient := mocks.NewClient(t)
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewUnavailable("frontend down"))
	repo := ordermemory.NewRepository()
	orchestrator := NewTemporalOrderWorkflows(temporalClient, WithInlineFallback(orderapp.NewService(repo)))

	order, err := orchestrator.CreateOrder(context.Background(), validation.Payload{
		"deliverTo":    "Rick",
		"mobileNumber": "555",
		"dishes":       []any{map[string]any{"dishId": "d1", "quantity": float64(2)}},
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rick", stored.DeliverTo)
}

func TestTemporalOrderWorkflows_StartFailureWithoutFallback(t *testing.T) {
	temporalClient := mocks.NewClient(t)
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewUnavailable("frontend down"))
	orchestrator := NewTemporalOrderWorkflows(temporalClient)

	_, err := orchestrator.CreateOrder(context.Background(), validation.Payload{})
	require.Error(t, err)
	var unavailable *serviceerror.Unavailable
	assert.True(t, errors.As(err, &unavailable))
}
