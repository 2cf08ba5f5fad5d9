package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/models"
)

func latteLine() models.CartLineItem {
	return models.CartLineItem{
		Product:   models.Product{ID: "latte", Name: "Latte", HasVariants: true},
		Variant:   &models.Variant{ID: "grande", Name: "Grande", Price: 8000},
		Toppings:  []models.Topping{{ID: "nutella", Name: "Nutella"}},
		Quantity:  2,
		UnitPrice: 9000,
	}
}

var ana = models.DeliveryInfo{CustomerName: "Ana", Address: "Calle 5 #123"}

func TestFormatOrderMessage_Cash(t *testing.T) {
	msg := FormatOrderMessage([]models.CartLineItem{latteLine()}, ana, models.PaymentCash, "Nube Alta Cafe")

	want := "*NUEVO PEDIDO: Nube Alta Cafe*\n" +
		"\n" +
		"*Cliente:* Ana\n" +
		"*Dirección:* Calle 5 #123\n" +
		"*Forma de pago:* 💵 Efectivo\n" +
		"\n" +
		"*🛒 DETALLE DEL PEDIDO:*\n" +
		"• 2x Latte — Grande · Nutella - $180.00\n" +
		"\n" +
		"*TOTAL A PAGAR: $180.00*"
	assert.Equal(t, want, msg)
	assert.NotContains(t, msg, "Notas")
}

func TestFormatOrderMessage_TransferAddsProofInstruction(t *testing.T) {
	lines := []models.CartLineItem{latteLine()}
	cash := FormatOrderMessage(lines, ana, models.PaymentCash, "Nube Alta Cafe")
	transfer := FormatOrderMessage(lines, ana, models.PaymentTransfer, "Nube Alta Cafe")

	assert.Contains(t, transfer, "*Forma de pago:* 💳 Transferencia")
	assert.Contains(t, transfer, TransferProofInstruction)
	assert.NotContains(t, cash, TransferProofInstruction)

	// instruction comes after the detail and before the total
	detailAt := strings.Index(transfer, "• 2x Latte")
	proofAt := strings.Index(transfer, TransferProofInstruction)
	totalAt := strings.Index(transfer, "*TOTAL A PAGAR: $180.00*")
	assert.True(t, detailAt < proofAt && proofAt < totalAt)

	// itemized section and total are identical
	section := func(msg string) string {
		start := strings.Index(msg, "*🛒 DETALLE DEL PEDIDO:*")
		end := strings.Index(msg[start:], "\n\n")
		return msg[start : start+end]
	}
	assert.Equal(t, section(cash), section(transfer))
	assert.True(t, strings.HasSuffix(transfer, "*TOTAL A PAGAR: $180.00*"))
}

func TestFormatOrderMessage_NotesAndMultipleLines(t *testing.T) {
	base := int64(4500)
	lines := []models.CartLineItem{
		latteLine(),
		{
			Product:   models.Product{ID: "americano", Name: "Americano", BasePrice: &base},
			Quantity:  1,
			UnitPrice: 4500,
		},
		{
			Product:   models.Product{ID: "frappe", Name: "Frappé", AcceptsToppings: true},
			Toppings:  []models.Topping{{ID: "oreo", Name: "Oreo"}, {ID: "chispas", Name: "Chispas"}},
			Quantity:  3,
			UnitPrice: 6050,
		},
	}
	info := ana
	info.Notes = "  Sin azúcar  "

	msg := FormatOrderMessage(lines, info, models.PaymentCash, "Café X")

	assert.Contains(t, msg, "*NUEVO PEDIDO: Café X*\n")
	assert.Contains(t, msg, "*Notas:* Sin azúcar\n")
	assert.Contains(t, msg, "• 1x Americano - $45.00\n")
	assert.Contains(t, msg, "• 3x Frappé — Oreo, Chispas - $181.50\n")
	assert.True(t, strings.HasSuffix(msg, "*TOTAL A PAGAR: $406.50*"))

	// lines keep cart order
	assert.Less(t, strings.Index(msg, "Latte"), strings.Index(msg, "Americano"))
	assert.Less(t, strings.Index(msg, "Americano"), strings.Index(msg, "Frappé"))
}

func TestFormatOrderMessage_DoesNotMutateInput(t *testing.T) {
	lines := []models.CartLineItem{latteLine()}
	before := latteLine()
	FormatOrderMessage(lines, ana, models.PaymentTransfer, "Nube Alta Cafe")
	assert.Equal(t, before, lines[0])
}

func TestWhatsAppURL(t *testing.T) {
	link := WhatsAppURL("+52 272 281 5138", "Hola mundo & más+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "api.whatsapp.com", u.Host)
	assert.Equal(t, "522722815138", u.Query().Get("phone"))
	assert.Equal(t, "Hola mundo & más+", u.Query().Get("text"))
	assert.Equal(t, "phone_number", u.Query().Get("type"))
	assert.Contains(t, link, "Hola%20mundo")
}
