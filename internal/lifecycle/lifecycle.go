// Package lifecycle owns the order state machine. Every status change in the
// application funnels through Transition so the validate-and-append-timeline
// contract cannot be bypassed by ad-hoc field writes.
package lifecycle

import (
	"time"

	"anandam/internal/model"
)

// Actor identifies who is requesting a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
)

// Request describes a single requested status change.
type Request struct {
	Target model.OrderStatus
	Actor  Actor
	Note   string

	// Required when Target is Shipped.
	TrackingNumber string
	Courier        string

	// Recorded on the order for Cancelled / Return Requested.
	Reason string

	// Timestamp for the appended timeline entry.
	Now time.Time
}

// transitions is the legal transition table: from -> reachable targets.
// Statuses absent from a target list are rejected; statuses with an empty
// list are terminal.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.StatusPending:         {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed:       {model.StatusPacked, model.StatusCancelled},
	model.StatusPacked:          {model.StatusShipped, model.StatusCancelled},
	model.StatusShipped:         {model.StatusDelivered},
	model.StatusDelivered:       {model.StatusReturnRequested},
	model.StatusReturnRequested: {model.StatusReturned, model.StatusDelivered},
	model.StatusCancelled:       {},
	model.StatusReturned:        {},
}

// CanTransition reports whether target is reachable from current.
func CanTransition(current, target model.OrderStatus) bool {
	for _, s := range transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(s model.OrderStatus) bool {
	return len(transitions[s]) == 0
}

// customerAllowed reports whether a customer may request this transition.
// Customers may only cancel before shipping and request a return once
// delivered; everything else is admin-only.
func customerAllowed(current, target model.OrderStatus) bool {
	switch target {
	case model.StatusCancelled:
		return current == model.StatusPending || current == model.StatusConfirmed || current == model.StatusPacked
	case model.StatusReturnRequested:
		return current == model.StatusDelivered
	}
	return false
}

// Seed initialises a new order's status and timeline at checkout.
func Seed(o *model.Order, now time.Time) {
	o.Status = model.StatusPending
	o.Timeline = []model.TimelineEntry{{
		Status:    model.StatusPending,
		Timestamp: now,
		Note:      "Order placed",
	}}
}

// Transition applies a requested status change to the order in memory.
//
// It validates the target against the transition table and the actor's
// permissions, enforces shipping details for Shipped, appends exactly one
// timeline entry, and records reasons for cancellations and returns. A
// request whose target equals the current status is a no-op, which makes
// retries of the same change safe.
//
// The returned bool reports whether the order changed; on error the order is
// left untouched.
func Transition(o *model.Order, req Request) (bool, error) {
	if req.Target == o.Status {
		return false, nil
	}

	if !CanTransition(o.Status, req.Target) {
		return false, model.ErrInvalidTransition
	}

	if req.Actor == ActorCustomer && !customerAllowed(o.Status, req.Target) {
		return false, model.ErrActorNotAllowed
	}

	if req.Target == model.StatusShipped {
		if req.TrackingNumber == "" || req.Courier == "" {
			return false, model.ErrMissingShippingInfo
		}
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	note := req.Note
	switch req.Target {
	case model.StatusShipped:
		o.TrackingNumber = req.TrackingNumber
		o.Courier = req.Courier
	case model.StatusCancelled:
		o.CancellationReason = req.Reason
	case model.StatusReturnRequested:
		o.ReturnReason = req.Reason
	case model.StatusDelivered:
		if o.Status == model.StatusReturnRequested && note == "" {
			note = "Return request rejected"
		}
	}

	o.Status = req.Target
	o.Timeline = append(o.Timeline, model.TimelineEntry{
		Status:    req.Target,
		Timestamp: now,
		Note:      note,
	})
	o.UpdatedAt = now

	return true, nil
}
