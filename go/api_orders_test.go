package grubdashserver

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

func orderBody(status string) map[string]any {
	return map[string]any{
		"deliverTo":    "A",
		"mobileNumber": "1",
		"status":       status,
		"dishes":       []any{map[string]any{"dishId": "1", "quantity": 1}},
	}
}

func createOrder(t *testing.T, srv *testServer, status string) Order {
	t.Helper()
	rec := srv.send(t, http.MethodPost, "/orders", orderBody(status))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[Order](t, rec)
}

func TestCreateOrder(t *testing.T) {
	srv := newTestServer(t, nil)

	order := createOrder(t, srv, "pending")

	require.NotEmpty(t, order.Id)
	require.Equal(t, Order{
		Id:           order.Id,
		DeliverTo:    "A",
		MobileNumber: "1",
		Status:       "pending",
		Dishes:       []OrderDish{{DishId: "1", Quantity: 1}},
	}, order)
}

func TestCreateOrder_NonStringDeliverToIsStored(t *testing.T) {
	srv := newTestServer(t, nil)
	body := orderBody("pending")
	body["deliverTo"] = true

	rec := srv.send(t, http.MethodPost, "/orders", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "true", decodeData[Order](t, rec).DeliverTo)
}

func TestCreateOrder_DishesShape(t *testing.T) {
	srv := newTestServer(t, nil)

	missing := orderBody("pending")
	delete(missing, "dishes")
	requireMessage(t, srv.send(t, http.MethodPost, "/orders", missing), http.StatusBadRequest, "Order must include a dish")

	empty := orderBody("pending")
	empty["dishes"] = []any{}
	requireMessage(t, srv.send(t, http.MethodPost, "/orders", empty), http.StatusBadRequest, "Order must include at least one dish")

	badQty := orderBody("pending")
	badQty["dishes"] = []any{
		map[string]any{"dishId": "1", "quantity": 1},
		map[string]any{"dishId": "2", "quantity": 1.5},
	}
	requireMessage(t, srv.send(t, http.MethodPost, "/orders", badQty), http.StatusBadRequest,
		"Dish 1 must have a quantity that is an integer greater than 0")
}

func TestUpdateOrder_DeliveredIsRejected(t *testing.T) {
	srv := newTestServer(t, nil)
	order := createOrder(t, srv, "pending")

	rec := srv.send(t, http.MethodPut, "/orders/"+order.Id, orderBody("delivered"))

	requireMessage(t, rec, http.StatusBadRequest, "A delivered order cannot be changed")
}

func TestUpdateOrder(t *testing.T) {
	srv := newTestServer(t, nil)
	order := createOrder(t, srv, "pending")

	body := orderBody("preparing")
	body["id"] = order.Id
	body["deliverTo"] = "B"
	rec := srv.send(t, http.MethodPut, "/orders/"+order.Id, body)

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeData[Order](t, rec)
	require.Equal(t, "preparing", updated.Status)
	require.Equal(t, "B", updated.DeliverTo)
	require.Equal(t, order.Id, updated.Id)
}

func TestUpdateOrder_Errors(t *testing.T) {
	srv := newTestServer(t, nil)
	order := createOrder(t, srv, "pending")

	requireMessage(t, srv.send(t, http.MethodPut, "/orders/ghost", orderBody("pending")), http.StatusNotFound, "Order does not exist: ghost.")

	mismatch := orderBody("pending")
	mismatch["id"] = "other"
	requireMessage(t, srv.send(t, http.MethodPut, "/orders/"+order.Id, mismatch), http.StatusBadRequest,
		"Order id does not match route id. Order: other, Route: "+order.Id)

	requireMessage(t, srv.send(t, http.MethodPut, "/orders/"+order.Id, orderBody("invalid")), http.StatusBadRequest,
		"Order must have a status of pending, preparing, out-for-delivery, delivered")
}

func TestDestroyOrder_NotPending(t *testing.T) {
	srv := newTestServer(t, nil)
	order := createOrder(t, srv, "preparing")

	rec := srv.do(t, http.MethodDelete, "/orders/"+order.Id, "")

	requireMessage(t, rec, http.StatusBadRequest, "An order cannot be deleted unless it is pending")
	list := decodeData[[]Order](t, srv.do(t, http.MethodGet, "/orders", ""))
	require.Equal(t, []Order{order}, list)
}

func TestDestroyOrder_Pending(t *testing.T) {
	srv := newTestServer(t, nil)
	first := createOrder(t, srv, "pending")
	second := createOrder(t, srv, "pending")
	third := createOrder(t, srv, "out-for-delivery")

	rec := srv.do(t, http.MethodDelete, "/orders/"+second.Id, "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
	list := decodeData[[]Order](t, srv.do(t, http.MethodGet, "/orders", ""))
	require.Equal(t, []Order{first, third}, list)

	requireMessage(t, srv.do(t, http.MethodDelete, "/orders/"+second.Id, ""), http.StatusNotFound,
		"Order does not exist: "+second.Id+".")
}

type stubWorkflows struct {
	calls int
	err   error
}

func (s *stubWorkflows) CreateOrder(_ context.Context, payload validation.Payload) (*orderdomain.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	deliverTo, _ := payload.String("deliverTo")
	return &orderdomain.Order{ID: "wf-1", DeliverTo: deliverTo}, nil
}

func TestCreateOrder_UsesWorkflows(t *testing.T) {
	workflows := &stubWorkflows{}
	srv := newTestServer(t, workflows)

	rec := srv.send(t, http.MethodPost, "/orders", orderBody("pending"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, workflows.calls)
	require.JSONEq(t, `{"data": {"id": "wf-1", "deliverTo": "A", "mobileNumber": "", "dishes": []}}`, rec.Body.String())
}

func TestCreateOrder_WorkflowSignalIsWrittenVerbatim(t *testing.T) {
	srv := newTestServer(t, &stubWorkflows{err: apierrors.BadRequest("Order must include a deliverTo")})

	requireMessage(t, srv.send(t, http.MethodPost, "/orders", orderBody("pending")), http.StatusBadRequest, "Order must include a deliverTo")
}

func TestCreateOrder_UnexpectedWorkflowError(t *testing.T) {
	srv := newTestServer(t, &stubWorkflows{err: context.DeadlineExceeded})

	requireMessage(t, srv.send(t, http.MethodPost, "/orders", orderBody("pending")), http.StatusInternalServerError, "Internal Server Error")
}
