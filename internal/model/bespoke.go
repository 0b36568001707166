package model

import (
	"time"

	"github.com/google/uuid"
)

// BespokeStatus is the closed set of tailoring consultation states.
type BespokeStatus string

const (
	BespokePending   BespokeStatus = "Pending"
	BespokeConsulted BespokeStatus = "Consulted"
	BespokeFulfilled BespokeStatus = "Fulfilled"
)

// ParseBespokeStatus maps a raw string onto the closed bespoke status set.
func ParseBespokeStatus(s string) (BespokeStatus, error) {
	switch BespokeStatus(s) {
	case BespokePending, BespokeConsulted, BespokeFulfilled:
		return BespokeStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// BespokeRequest is a custom-tailoring consultation. Created by a customer,
// advanced only by an admin; independent of the order lifecycle.
type BespokeRequest struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       string          `json:"userId" db:"user_id"`
	UserName     string          `json:"userName" db:"user_name"`
	UserEmail    string          `json:"userEmail" db:"user_email"`
	ProductID    string          `json:"productId" db:"product_id"`
	ProductName  string          `json:"productName" db:"product_name"`
	Measurements Measurements    `json:"measurements" db:"measurements"`
	Unit         MeasurementUnit `json:"unit" db:"unit"`
	Notes        string          `json:"notes,omitempty" db:"notes"`
	Status       BespokeStatus   `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}
