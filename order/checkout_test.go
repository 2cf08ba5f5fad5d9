package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/models"
)

var storeConfig = models.StoreConfig{
	BusinessName:   "Nube Alta Cafe",
	WhatsAppPhone:  "522722815138",
	BankingDetails: "BBVA CLABE 012345678901234567",
}

func validRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		CustomerName:  "Ana",
		Address:       "Calle 5 #123",
		PaymentMethod: models.PaymentCash,
	}
}

func TestValidateCheckout(t *testing.T) {
	info, payment, err := ValidateCheckout(models.CheckoutRequest{
		CustomerName:  "  <b>Ana</b> ",
		Address:       "Calle 5 #123 & Av. Juárez",
		Notes:         "<script>alert(1)</script>Sin azúcar",
		PaymentMethod: "Transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", info.CustomerName)
	assert.Equal(t, "Calle 5 #123 & Av. Juárez", info.Address)
	assert.Equal(t, "Sin azúcar", info.Notes)
	assert.Equal(t, models.PaymentTransfer, payment)
}

func TestValidateCheckout_FieldErrors(t *testing.T) {
	_, _, err := ValidateCheckout(models.CheckoutRequest{
		CustomerName:  "A",
		Address:       strings.Repeat("x", 201),
		PaymentMethod: "tarjeta",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "customerName")
	assert.Contains(t, verr.Fields, "address")
	assert.Contains(t, verr.Fields, "paymentMethod")
	assert.NotContains(t, verr.Fields, "notes")
	assert.Contains(t, err.Error(), "address:")
}

func TestCheckout(t *testing.T) {
	resp, err := Checkout([]models.CartLineItem{latteLine()}, validRequest(), storeConfig)
	require.NoError(t, err)

	assert.Equal(t, int64(18000), resp.Total)
	assert.Contains(t, resp.Message, "• 2x Latte — Grande · Nutella - $180.00")
	assert.True(t, strings.HasPrefix(resp.WhatsAppURL, "https://api.whatsapp.com/send/?phone=522722815138&text="))
	assert.Empty(t, resp.BankingDetails)

	req := validRequest()
	req.PaymentMethod = models.PaymentTransfer
	resp, err = Checkout([]models.CartLineItem{latteLine()}, req, storeConfig)
	require.NoError(t, err)
	assert.Equal(t, storeConfig.BankingDetails, resp.BankingDetails)
	assert.Contains(t, resp.Message, TransferProofInstruction)
}

func TestCheckout_Preconditions(t *testing.T) {
	_, err := Checkout(nil, validRequest(), storeConfig)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, "Tu carrito está vacío. Agrega productos antes de continuar.", UserMessage(err))

	_, err = Checkout([]models.CartLineItem{latteLine()}, validRequest(), models.StoreConfig{BusinessName: "X"})
	assert.ErrorIs(t, err, ErrWhatsAppNotConfigured)

	bad := validRequest()
	bad.Address = ""
	_, err = Checkout([]models.CartLineItem{latteLine()}, bad, storeConfig)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestCheckout_DefaultBusinessName(t *testing.T) {
	resp, err := Checkout([]models.CartLineItem{latteLine()}, validRequest(), models.StoreConfig{WhatsAppPhone: "5215555555555"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Message, "*NUEVO PEDIDO: Nube Alta Cafe*"))
}
