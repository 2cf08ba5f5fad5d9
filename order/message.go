package order

import (
	"strconv"
	"strings"

	"nube-alta-cafe/models"
	"nube-alta-cafe/pricing"
	"nube-alta-cafe/utils"
)

// TransferProofInstruction is appended after the order detail when paying by bank transfer
const TransferProofInstruction = "📎 *Adjunta tu comprobante de transferencia al enviar este mensaje.*"

// PaymentLabel returns the label shown for a payment method
func PaymentLabel(method models.PaymentMethod) string {
	if method == models.PaymentTransfer {
		return "💳 Transferencia"
	}
	return "💵 Efectivo"
}

// FormatOrderMessage renders the order text sent to the business over WhatsApp.
// It is a pure function of its inputs; callers validate the delivery data first.
func FormatOrderMessage(lines []models.CartLineItem, delivery models.DeliveryInfo, payment models.PaymentMethod, businessName string) string {
	var b strings.Builder

	b.WriteString("*NUEVO PEDIDO: " + businessName + "*\n\n")
	b.WriteString("*Cliente:* " + delivery.CustomerName + "\n")
	b.WriteString("*Dirección:* " + delivery.Address + "\n")
	if notes := strings.TrimSpace(delivery.Notes); notes != "" {
		b.WriteString("*Notas:* " + notes + "\n")
	}
	b.WriteString("*Forma de pago:* " + PaymentLabel(payment) + "\n\n")

	b.WriteString("*🛒 DETALLE DEL PEDIDO:*\n")
	for _, line := range lines {
		b.WriteString(FormatLine(line))
		b.WriteByte('\n')
	}

	if payment == models.PaymentTransfer {
		b.WriteString("\n" + TransferProofInstruction + "\n")
	}

	_, total := pricing.CartTotals(lines)
	b.WriteString("\n*TOTAL A PAGAR: " + utils.FormatMXN(total) + "*")

	return b.String()
}

// FormatLine renders one cart line: "• 2x Latte — Grande · Nutella, Oreo - $180.00"
func FormatLine(line models.CartLineItem) string {
	var parts []string
	if line.Variant != nil {
		parts = append(parts, line.Variant.Name)
	}
	if len(line.Toppings) > 0 {
		names := make([]string, 0, len(line.Toppings))
		for _, t := range line.Toppings {
			names = append(names, t.Name)
		}
		parts = append(parts, strings.Join(names, ", "))
	}

	detail := ""
	if len(parts) > 0 {
		detail = " — " + strings.Join(parts, " · ")
	}

	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(strconv.Itoa(line.Quantity))
	b.WriteString("x ")
	b.WriteString(line.Product.Name)
	b.WriteString(detail)
	b.WriteString(" - ")
	b.WriteString(utils.FormatMXN(line.LineTotal()))
	return b.String()
}
