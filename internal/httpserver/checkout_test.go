package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/storeline/internal/transport"
)

func TestCheckoutPreviewHandler(t *testing.T) {
	env := newTestEnv(t)

	p := env.seedProduct("Desk Lamp", "desk-lamp", "100.00", 10)

	rec, c := env.doJSON(http.MethodPost, "/api/v1/checkout/preview", transport.CheckoutPreviewRequest{
		Items: []transport.CheckoutItemRef{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, env.Checkout.Preview(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[transport.CheckoutPreviewResponse](t, rec)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "200.00", resp.Totals.Total)
	require.Equal(t, "0.00", resp.Totals.Discount)
	require.Equal(t, "USD", resp.Currency)
}

func TestCheckoutPreviewEmptyReturns400(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSON(http.MethodPost, "/api/v1/checkout/preview", transport.CheckoutPreviewRequest{})
	require.NoError(t, env.Checkout.Preview(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	p := env.seedProduct("Desk Lamp", "desk-lamp", "50.00", 10)

	rec, c := env.doJSON(http.MethodPost, "/api/v1/checkout/create-order", transport.CreateOrderRequest{
		Items: []transport.CheckoutItemRef{{ProductID: p.ID, Quantity: 1}},
		ShippingAddress: transport.ShippingAddress{
			Line1:       "12 Harbor St",
			City:        "Portland",
			PostalCode:  "97201",
			CountryCode: "US",
		},
	})
	require.NoError(t, env.Checkout.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody[transport.CreateOrderResponse](t, rec)
	require.Equal(t, "1000", resp.OrderNumber)
	require.Equal(t, "50.00", resp.Total)
	require.Equal(t, "USD", resp.Currency)
}

func TestCreateOrderBadAddressReturns400(t *testing.T) {
	env := newTestEnv(t)

	p := env.seedProduct("Desk Lamp", "desk-lamp", "50.00", 10)

	rec, c := env.doJSON(http.MethodPost, "/api/v1/checkout/create-order", transport.CreateOrderRequest{
		Items:           []transport.CheckoutItemRef{{ProductID: p.ID, Quantity: 1}},
		ShippingAddress: transport.ShippingAddress{Line1: "12 Harbor St"},
	})
	require.NoError(t, env.Checkout.CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[transport.ErrorResponse](t, rec)
	require.Contains(t, body.Error, "countryCode")
}
