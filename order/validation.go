package order

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"nube-alta-cafe/models"
	"nube-alta-cafe/utils"
)

const (
	minNameLength    = 2
	maxNameLength    = 100
	minAddressLength = 5
	maxAddressLength = 200
	maxNotesLength   = 500
)

// ValidationError lists the invalid checkout fields with a message for each one
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid order data: " + strings.Join(parts, "; ")
}

// ValidateCheckout normalizes and validates the delivery data and payment method.
// It returns a *ValidationError when any required field is missing or out of range.
func ValidateCheckout(req models.CheckoutRequest) (models.DeliveryInfo, models.PaymentMethod, error) {
	info := models.DeliveryInfo{
		CustomerName: utils.CleanText(req.CustomerName),
		Address:      utils.CleanText(req.Address),
		Notes:        utils.CleanText(req.Notes),
	}
	payment := models.PaymentMethod(strings.ToLower(strings.TrimSpace(string(req.PaymentMethod))))

	fields := map[string]string{}
	switch n := utf8.RuneCountInString(info.CustomerName); {
	case n < minNameLength:
		fields["customerName"] = fmt.Sprintf("El nombre debe tener al menos %d caracteres", minNameLength)
	case n > maxNameLength:
		fields["customerName"] = fmt.Sprintf("El nombre no puede exceder %d caracteres", maxNameLength)
	}
	switch n := utf8.RuneCountInString(info.Address); {
	case n < minAddressLength:
		fields["address"] = fmt.Sprintf("La dirección debe tener al menos %d caracteres", minAddressLength)
	case n > maxAddressLength:
		fields["address"] = fmt.Sprintf("La dirección no puede exceder %d caracteres", maxAddressLength)
	}
	if utf8.RuneCountInString(info.Notes) > maxNotesLength {
		fields["notes"] = fmt.Sprintf("Las notas no pueden exceder %d caracteres", maxNotesLength)
	}
	if !payment.Valid() {
		fields["paymentMethod"] = "Selecciona una forma de pago válida"
	}

	if len(fields) > 0 {
		return models.DeliveryInfo{}, "", &ValidationError{Fields: fields}
	}
	return info, payment, nil
}
