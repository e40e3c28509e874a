package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dishmemory "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/memory"
	ordermemory "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/memory"
	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
)

const document = `
dishes:
  - id: 3c637d011d844ebab1205fef8a7e36ea
    name: Broccoli and beetroot stir fry
    description: Crunchy stir fry featuring fresh broccoli and beetroot
    price: 15
    image_url: https://example.com/broccoli.jpg
  - name: Falafel
    description: Crispy
    price: 9
    image_url: https://example.com/falafel.jpg
orders:
  - id: f6069a542257054114138301947672ba
    deliverTo: 1600 Pennsylvania Avenue NW, Washington, DC 20500
    mobileNumber: (202) 456-1111
    status: out-for-delivery
    dishes:
      - dishId: 3c637d011d844ebab1205fef8a7e36ea
        quantity: 1
`

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	file, err := Load(path)
	require.NoError(t, err)

	dishes := dishmemory.NewRepository()
	orders := ordermemory.NewRepository()
	ids := idgen.GeneratorFunc(func() string { return "generated" })
	result, err := Apply(context.Background(), file, dishes, orders, ids)
	require.NoError(t, err)
	assert.Equal(t, Result{Dishes: 2, Orders: 1}, result)

	storedDishes, err := dishes.List(context.Background())
	require.NoError(t, err)
	require.Len(t, storedDishes, 2)
	assert.Equal(t, "3c637d011d844ebab1205fef8a7e36ea", storedDishes[0].ID)
	assert.Equal(t, int64(15), storedDishes[0].Price)
	assert.Equal(t, "generated", storedDishes[1].ID)

	order, err := orders.GetByID(context.Background(), "f6069a542257054114138301947672ba")
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusOutForDelivery, order.Status)
	assert.Equal(t, []orderdomain.Line{{DishID: "3c637d011d844ebab1205fef8a7e36ea", Quantity: 1}}, order.Dishes)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("dishes:\n  - nam: typo\n"))
	assert.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	file, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, file.Dishes)
	assert.Empty(t, file.Orders)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
