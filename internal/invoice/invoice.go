// Package invoice renders the order receipt document. The render is
// deterministic for a given order: the invoice can be regenerated from the
// persisted order record at any time.
package invoice

import (
	_ "embed"
	"html/template"
	"strings"
	"time"

	"pizza-service/internal/domain"
)

//go:embed invoice_frame.html
var frameHTML string

var frame = template.Must(template.New("invoice").Parse(frameHTML))

// DeliveryLead is how far after placement the kitchen promises delivery.
const DeliveryLead = 45 * time.Minute

const timeLayout = "Monday, Jan 2, 2006 03:04 PM"

type invoiceData struct {
	FirstName    string
	DeliveryTime string
	Address      string
	OrderID      string
	OrderTime    string
	Lines        []domain.OrderLine
	Total        float64
	Method       string
}

// Render produces the invoice HTML for an order.
func Render(o *domain.Order) (string, error) {
	data := invoiceData{
		FirstName:    o.Buyer.FirstName,
		DeliveryTime: o.PlacedAt.Add(DeliveryLead).Format(timeLayout),
		Address:      o.DeliverTo,
		OrderID:      o.ID,
		OrderTime:    o.PlacedAt.Format(timeLayout),
		Lines:        o.Lines,
		Total:        o.Total,
		Method:       "Card",
	}

	var b strings.Builder
	if err := frame.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
