package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"anandam/internal/config"
	"anandam/internal/database"
	"anandam/internal/model"
	"anandam/internal/repository"
	"anandam/internal/service"
)

// seed populates an empty database with the initial catalogue, a starter
// coupon set and the default payment settings.
//
// Usage: go run scripts/seed.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	productRepo := repository.NewProductRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	settingsRepo := repository.NewSettingsRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	couponService := service.NewCouponService(couponRepo, logger)

	for _, p := range initialProducts() {
		if err := productService.Create(ctx, &p); err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.ID, err)
		}
		fmt.Printf("Seeded product %s (%s)\n", p.ID, p.Name)
	}

	for _, r := range initialReviews() {
		if err := productService.AddReview(ctx, &r); err != nil {
			log.Fatalf("Failed to seed review for product %s: %v", r.ProductID, err)
		}
	}
	fmt.Println("Seeded reviews")

	for _, c := range initialCoupons() {
		if err := couponService.Create(ctx, &c); err != nil {
			log.Fatalf("Failed to seed coupon %s: %v", c.Code, err)
		}
		fmt.Printf("Seeded coupon %s\n", c.Code)
	}

	settings := model.PaymentSettings{
		CODEnabled:            cfg.Payment.CODEnabled,
		CODFee:                cfg.Payment.CODFee,
		PrepaidDiscount:       cfg.Payment.PrepaidDiscount,
		ShippingCharge:        cfg.Payment.ShippingCharge,
		FreeShippingThreshold: cfg.Payment.FreeShippingThreshold,
		UpdatedAt:             time.Now(),
	}
	if err := settingsRepo.Set(ctx, &settings); err != nil {
		log.Fatalf("Failed to seed payment settings: %v", err)
	}
	fmt.Println("Seeded payment settings")

	fmt.Println("\nDatabase seeded successfully!")
}

func initialProducts() []model.Product {
	return []model.Product{
		{
			ID:            "1",
			Name:          "Royal Silk Zardosi Lehanga",
			Description:   "A masterpiece of traditional Indian embroidery on pure Banarasi silk. Hand-stitched with love and precision.",
			Price:         18500,
			OriginalPrice: 24000,
			Category:      model.CategoryWomen,
			SubCategory:   "Ethnic Wear",
			Images: []string{
				"https://images.unsplash.com/photo-1583391733956-6c78276477e2?q=80&w=800",
				"https://images.unsplash.com/photo-1595967783875-c371f35d8049?q=80&w=800",
				"https://images.unsplash.com/photo-1594633313217-0628e932943e?q=80&w=800",
			},
			Sizes:          []string{"S", "M", "L"},
			Stock:          5,
			IsOffer:        true,
			IsCustomizable: true,
		},
		{
			ID:            "2",
			Name:          "Boho-Chic Linen Summer Dress",
			Description:   "Lightweight breathable linen in a relaxed silhouette. Effortless style for warm afternoons.",
			Price:         3200,
			OriginalPrice: 3200,
			Category:      model.CategoryWomen,
			SubCategory:   "Western Wear",
			Images: []string{
				"https://images.unsplash.com/photo-1515372039744-b8f02a3ae446?q=80&w=800",
				"https://images.unsplash.com/photo-1496747611176-843222e1e57c?q=80&w=800",
			},
			Sizes:          []string{"XS", "S", "M", "L"},
			Stock:          25,
			IsOffer:        false,
			IsCustomizable: false,
		},
		{
			ID:            "3",
			Name:          "Sequinned Tutu Party Dress",
			Description:   "Every little girl deserves to sparkle. This tiered tulle dress features a satin bodice and hand-sewn sequins.",
			Price:         2100,
			OriginalPrice: 3500,
			Category:      model.CategoryGirls,
			SubCategory:   "Occasion Wear",
			Images: []string{
				"https://images.unsplash.com/photo-1518833503222-793084185c3c?q=80&w=800",
				"https://images.unsplash.com/photo-1519238263530-99bdd11df2ea?q=80&w=800",
			},
			Sizes:          []string{"2Y", "4Y", "6Y", "8Y"},
			Stock:          12,
			IsOffer:        true,
			IsCustomizable: false,
		},
	}
}

func initialReviews() []model.Review {
	return []model.Review{
		{ProductID: "1", UserName: "Ananya Sharma", Rating: 5, Comment: "Absolutely stunning work! The quality of silk is premium."},
		{ProductID: "1", UserName: "Meera K.", Rating: 5, Comment: "The zardosi work is very intricate. Worth every penny."},
		{ProductID: "1", UserName: "Ritu Singh", Rating: 4, Comment: "Very beautiful, but took a bit long to arrive."},
		{ProductID: "2", UserName: "Sarah J.", Rating: 5, Comment: "So comfortable and perfect for the heat."},
		{ProductID: "2", UserName: "Priya Verma", Rating: 4, Comment: "Linen is high quality. Runs slightly large."},
		{ProductID: "3", UserName: "Mama Bear", Rating: 5, Comment: "My daughter looked like a princess. Very happy!"},
	}
}

func initialCoupons() []model.Coupon {
	nextYear := time.Now().AddDate(1, 0, 0)
	return []model.Coupon{
		{
			Code:         "WELCOME10",
			DiscountType: model.DiscountPercentage,
			Value:        10,
			MinPurchase:  1000,
			ExpiryDate:   &nextYear,
			IsActive:     true,
		},
		{
			Code:         "FESTIVE500",
			DiscountType: model.DiscountFixed,
			Value:        500,
			MinPurchase:  5000,
			ExpiryDate:   &nextYear,
			IsActive:     true,
		},
	}
}
