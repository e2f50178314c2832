package notifications

import (
	"strings"
	"text/template"

	"shipping/internal/core/application/usecases/queries"
)

// OrderCreatedEmailSubject is the subject line of the pickup notification.
const OrderCreatedEmailSubject = "New delivery available for pickup"

var orderCreatedEmailTemplate = template.Must(template.New("order_created").Parse(
	`Hello, {{.Deliveryman}}!

A new delivery has been assigned to you and is ready for pickup.

Product: {{.Product}}
Recipient: {{.Recipient}}
Address: {{.Street}}, {{.StreetNumber}}{{if .Complement}} - {{.Complement}}{{end}}
{{.Neighborhood}}, {{.City}} - {{.State}}, {{.ZipCode}}

Pickups are accepted from 8:00 am to 18:00 pm.
`))

type orderCreatedEmailData struct {
	Deliveryman  string
	Product      string
	Recipient    string
	Street       string
	StreetNumber string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
}

// RenderOrderCreatedEmail produces the plain-text body of the pickup
// notification sent to the assigned deliveryman.
func RenderOrderCreatedEmail(view queries.OrderView) (string, error) {
	data := orderCreatedEmailData{Product: view.Product}

	if view.Deliveryman != nil {
		data.Deliveryman = view.Deliveryman.Name
	}
	if view.Recipient != nil {
		data.Recipient = view.Recipient.Name
		data.Street = view.Recipient.Street
		data.StreetNumber = view.Recipient.StreetNumber
		data.Complement = view.Recipient.Complement
		data.Neighborhood = view.Recipient.Neighborhood
		data.City = view.Recipient.City
		data.State = view.Recipient.State
		data.ZipCode = view.Recipient.ZipCode
	}

	var body strings.Builder
	if err := orderCreatedEmailTemplate.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
