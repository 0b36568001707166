// Package report builds periodic sales reports and archives them to S3.
package report

import (
	"context"
	"time"
)

// SalesRow is one order line in a sales report.
type SalesRow struct {
	OrderID   string    `json:"orderId"`
	Date      time.Time `json:"date"`
	User      string    `json:"user"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemsCount"`
}

// SalesReport is a snapshot of recent orders.
type SalesReport struct {
	GeneratedAt  time.Time  `json:"generatedAt"`
	WindowDays   int        `json:"windowDays"`
	OrderCount   int        `json:"orderCount"`
	TotalRevenue float64    `json:"totalRevenue"`
	Rows         []SalesRow `json:"rows"`
}

// Archiver persists a sales report somewhere durable.
type Archiver interface {
	// Archive stores the report.
	Archive(ctx context.Context, r *SalesReport) error
}
