package view

import (
	"fmt"
	"time"
)

var ordersSchema = &Schema{
	ID: "id",
	Fields: map[string]FieldType{
		"id":        FieldString,
		"customer":  FieldString,
		"email":     FieldString,
		"status":    FieldEnum,
		"amount":    FieldNumber,
		"paid":      FieldBoolean,
		"createdAt": FieldDate,
	},
	Locale: "en",
}

// newOrders returns 23 orders, 9 of them pending.
func newOrders() []Record {
	statuses := []string{
		"pending", "shipped", "delivered", "pending", "cancelled",
		"pending", "shipped", "pending", "delivered", "pending",
		"shipped", "pending", "delivered", "cancelled", "pending",
		"shipped", "delivered", "pending", "shipped", "delivered",
		"pending", "cancelled", "shipped",
	}
	customers := []string{"Alice", "bob", "Carmen", "dave", "Élodie", "Frank"}

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	orders := make([]Record, len(statuses))
	for i, status := range statuses {
		orders[i] = Record{
			"id":        fmt.Sprintf("ord-%02d", i+1),
			"customer":  customers[i%len(customers)],
			"email":     fmt.Sprintf("%s@example.com", customers[i%len(customers)]),
			"status":    status,
			"amount":    float64(10 * (i + 1)),
			"paid":      i%2 == 0,
			"createdAt": base.AddDate(0, 0, i).Format(time.RFC3339),
		}
	}
	return orders
}

func ids(records []Record) []string {
	return IDs(records, "id")
}
