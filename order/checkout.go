package order

import (
	"errors"
	"net/url"
	"strings"

	"nube-alta-cafe/models"
	"nube-alta-cafe/pricing"
)

var (
	ErrEmptyCart             = errors.New("order: cart is empty")
	ErrWhatsAppNotConfigured = errors.New("order: store has no whatsapp phone configured")
)

// UserMessage returns the message shown to the customer for a checkout error
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "Revisa los datos de tu pedido."
	case errors.Is(err, ErrEmptyCart):
		return "Tu carrito está vacío. Agrega productos antes de continuar."
	case errors.Is(err, ErrWhatsAppNotConfigured):
		return "El negocio aún no ha configurado su número de WhatsApp para recibir pedidos."
	default:
		return "No pudimos preparar tu pedido. Intenta de nuevo."
	}
}

// WhatsAppURL builds the deep link that opens a chat with phone prefilled with message
func WhatsAppURL(phone string, message string) string {
	// WhatsApp expects %20 rather than + for spaces
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://api.whatsapp.com/send/?phone=" + url.QueryEscape(digitsOnly(phone)) +
		"&text=" + text + "&type=phone_number&app_absent=0"
}

// Checkout validates the request against the cart and store configuration and
// produces the order message and its WhatsApp link. The cart is not modified.
func Checkout(lines []models.CartLineItem, req models.CheckoutRequest, config models.StoreConfig) (models.CheckoutResponse, error) {
	info, payment, err := ValidateCheckout(req)
	if err != nil {
		return models.CheckoutResponse{}, err
	}
	if len(lines) == 0 {
		return models.CheckoutResponse{}, ErrEmptyCart
	}
	phone := digitsOnly(config.WhatsAppPhone)
	if phone == "" {
		return models.CheckoutResponse{}, ErrWhatsAppNotConfigured
	}

	businessName := config.BusinessName
	if businessName == "" {
		businessName = models.DefaultBusinessName
	}

	message := FormatOrderMessage(lines, info, payment, businessName)
	_, total := pricing.CartTotals(lines)

	resp := models.CheckoutResponse{
		Message:     message,
		WhatsAppURL: WhatsAppURL(phone, message),
		Total:       total,
	}
	if payment == models.PaymentTransfer {
		resp.BankingDetails = config.BankingDetails
	}
	return resp, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
