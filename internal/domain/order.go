package domain

import "time"

const FulfillmentDelivered = "DELIVERED"

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type Customer struct {
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type Fulfillment struct {
	DisplayStatus string     `json:"displayStatus"`
	DeliveredAt   *time.Time `json:"deliveredAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Order is a commerce order as returned to clients. LineItems holds the
// product summaries of the order's line items, not the raw edges.
type Order struct {
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	ShippingAddress *Address      `json:"shippingAddress"`
	Customer        *Customer     `json:"customer"`
	Fulfillments    []Fulfillment `json:"fulfillments"`
	LineItems       []Product     `json:"lineItems"`
}

// Delivered reports whether at least one fulfillment reached DELIVERED.
func (o *Order) Delivered() bool {
	for _, f := range o.Fulfillments {
		if f.DisplayStatus == FulfillmentDelivered {
			return true
		}
	}
	return false
}
