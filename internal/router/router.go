package router

import (
	"net/http"
	"strings"

	"anandam/internal/handler"
	"anandam/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	couponHandler *handler.CouponHandler,
	bespokeHandler *handler.BespokeHandler,
	adminHandler *handler.AdminHandler,
	userHandler *handler.UserHandler,
	stylistHandler *handler.StylistHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product routes: collection, item, and the stock/reviews subresources.
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/products")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodGet:
			productHandler.List(w, r)
		case len(parts) == 0 && r.Method == http.MethodPost:
			productHandler.Create(w, r)
		case len(parts) == 1 && r.Method == http.MethodGet:
			productHandler.GetByID(w, r, parts[0])
		case len(parts) == 1 && r.Method == http.MethodPut:
			productHandler.Update(w, r, parts[0])
		case len(parts) == 1 && r.Method == http.MethodDelete:
			productHandler.Delete(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "stock" && r.Method == http.MethodPost:
			productHandler.AdjustStock(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "reviews" && r.Method == http.MethodGet:
			productHandler.ListReviews(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "reviews" && r.Method == http.MethodPost:
			productHandler.AddReview(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Order routes: checkout, quote, listing and lifecycle transitions.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/orders")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodPost:
			orderHandler.Checkout(w, r)
		case len(parts) == 0 && r.Method == http.MethodGet:
			orderHandler.List(w, r)
		case len(parts) == 1 && parts[0] == "quote" && r.Method == http.MethodPost:
			orderHandler.Quote(w, r)
		case len(parts) == 1 && r.Method == http.MethodGet:
			orderHandler.GetByID(w, r, parts[0])
		case len(parts) == 2 && parts[1] == "transition" && r.Method == http.MethodPost:
			orderHandler.Transition(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Coupon routes: customer apply plus admin CRUD.
	couponRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/coupons")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodGet:
			couponHandler.List(w, r)
		case len(parts) == 0 && r.Method == http.MethodPost:
			couponHandler.Create(w, r)
		case len(parts) == 1 && parts[0] == "apply" && r.Method == http.MethodPost:
			couponHandler.Apply(w, r)
		case len(parts) == 1 && r.Method == http.MethodPut:
			couponHandler.Update(w, r, parts[0])
		case len(parts) == 1 && r.Method == http.MethodDelete:
			couponHandler.Delete(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/coupons", couponRouteHandler)
	mux.HandleFunc("/api/coupons/", couponRouteHandler)

	// Bespoke tailoring routes.
	bespokeRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/bespoke")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodGet:
			bespokeHandler.List(w, r)
		case len(parts) == 0 && r.Method == http.MethodPost:
			bespokeHandler.Create(w, r)
		case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPost:
			bespokeHandler.Advance(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/bespoke", bespokeRouteHandler)
	mux.HandleFunc("/api/bespoke/", bespokeRouteHandler)

	// Payment settings.
	mux.HandleFunc("/api/settings/payment", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adminHandler.GetSettings(w, r)
		case http.MethodPut:
			adminHandler.UpdateSettings(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Marketing campaigns.
	campaignRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/campaigns")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodGet:
			adminHandler.ListCampaigns(w, r)
		case len(parts) == 0 && r.Method == http.MethodPost:
			adminHandler.SaveCampaign(w, r)
		case len(parts) == 1 && r.Method == http.MethodDelete:
			adminHandler.DeleteCampaign(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/campaigns", campaignRouteHandler)
	mux.HandleFunc("/api/campaigns/", campaignRouteHandler)

	// Gift cards.
	giftCardRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/giftcards")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodPost:
			adminHandler.SaveGiftCard(w, r)
		case len(parts) == 1 && r.Method == http.MethodGet:
			adminHandler.GetGiftCard(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/giftcards", giftCardRouteHandler)
	mux.HandleFunc("/api/giftcards/", giftCardRouteHandler)

	// Account records: own profile plus admin user management.
	userRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		rest := trimRoute(r.URL.Path, "/api/users")
		parts := splitRoute(rest)

		switch {
		case len(parts) == 0 && r.Method == http.MethodGet:
			userHandler.List(w, r)
		case len(parts) == 1 && parts[0] == "me" && r.Method == http.MethodGet:
			userHandler.GetMe(w, r)
		case len(parts) == 1 && parts[0] == "me" && r.Method == http.MethodPut:
			userHandler.UpsertMe(w, r)
		case len(parts) == 2 && parts[1] == "role" && r.Method == http.MethodPut:
			userHandler.SetRole(w, r, parts[0])
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
	mux.HandleFunc("/api/users", userRouteHandler)
	mux.HandleFunc("/api/users/", userRouteHandler)

	// Audit trail.
	mux.HandleFunc("/api/audit", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		adminHandler.ListAudit(w, r)
	})

	// AI stylist.
	mux.HandleFunc("/api/stylist/advice", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		stylistHandler.Advice(w, r)
	})
	mux.HandleFunc("/api/stylist/describe", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		stylistHandler.Describe(w, r)
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// trimRoute strips the route prefix from a path.
func trimRoute(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

// splitRoute breaks the remaining path into segments.
func splitRoute(rest string) []string {
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
