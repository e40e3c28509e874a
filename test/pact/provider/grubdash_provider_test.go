//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/grubdash-api/test/pact"

	grubdashserver "github.com/Apurer/grubdash-api/go"
	dishmemory "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/memory"
	dishobs "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/observability"
	dishapp "github.com/Apurer/grubdash-api/internal/domains/dishes/application"
	dishdomain "github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	ordermemory "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/grubdash-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestGrubDashProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset()
		return nil, nil
	}
	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateDishesBaseline: reset,
		pacttest.StateDishMissing:    reset,
		pacttest.StateOrdersBaseline: reset,
		pacttest.StateDishExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedDish(t)
			}
			return nil, nil
		},
		pacttest.StatePendingOrder: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedOrder(t, pacttest.PendingOrderID, orderdomain.StatusPending)
			}
			return nil, nil
		},
		pacttest.StateDeliveredOrder: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedOrder(t, pacttest.DeliveredOrderID, orderdomain.StatusDelivered)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in fresh in-memory stores on every reset behind a stable server URL.
type contractProviderApp struct {
	mu     sync.RWMutex
	dishes *dishmemory.Repository
	orders *ordermemory.Repository
	router *gin.Engine
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset() {
	dishes := dishmemory.NewRepository()
	orders := ordermemory.NewRepository()
	dishService := dishobs.New(dishapp.NewService(dishes))
	orderService := orderobs.New(orderapp.NewService(orders))
	responder := grubdashserver.NewErrorResponder(nil)

	handlers := grubdashserver.ApiHandleFunctions{
		DishAPI:  grubdashserver.NewDishAPI(dishService, responder),
		OrderAPI: grubdashserver.NewOrderAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService), responder),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = grubdashserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.dishes, a.orders, a.router = dishes, orders, router
}

func (a *contractProviderApp) seedDish(t testing.TB) {
	t.Helper()
	example := pacttest.ExampleDish()
	dish := dishdomain.New(pacttest.ExistingDishID, dishdomain.Fields{
		Name:        example["name"].(string),
		Description: example["description"].(string),
		Price:       int64(example["price"].(int)),
		ImageURL:    example["image_url"].(string),
	})
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, err := a.dishes.Save(context.Background(), dish)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string, status orderdomain.Status) {
	t.Helper()
	order := orderdomain.New(id, orderdomain.Fields{
		DeliverTo:    "1600 Pennsylvania Avenue NW, Washington, DC 20500",
		MobileNumber: "(202) 456-1111",
		Status:       status,
		Dishes:       []orderdomain.Line{{DishID: pacttest.ExistingDishID, Quantity: 2}},
	})
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, err := a.orders.Save(context.Background(), order)
	require.NoError(t, err)
}
