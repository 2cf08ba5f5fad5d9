package models

// PaymentMethod is how the customer pays on delivery
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentTransfer PaymentMethod = "transferencia"
)

// Valid reports whether the payment method is one of the accepted values
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

// DeliveryInfo holds the customer supplied delivery data
type DeliveryInfo struct {
	CustomerName string `json:"customerName"`
	Address      string `json:"address"`
	Notes        string `json:"notes,omitempty"`
}

// CheckoutRequest represents the request body for submitting an order
// Example: {"customerName": "Ana", "address": "Calle 5 #123", "notes": "", "paymentMethod": "efectivo"}
type CheckoutRequest struct {
	CustomerName  string        `json:"customerName"`
	Address       string        `json:"address"`
	Notes         string        `json:"notes,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// CheckoutResponse contains the generated order message and the WhatsApp link that carries it
type CheckoutResponse struct {
	Message        string `json:"message"`
	WhatsAppURL    string `json:"whatsappUrl"`
	Total          int64  `json:"total"`
	BankingDetails string `json:"bankingDetails,omitempty"`
}
