// Package stylist generates styling advice and product copy through the
// Gemini API. The whole package is best effort: any failure falls back to
// static copy and is never surfaced to the caller as an error.
package stylist

import (
	"context"
	"fmt"

	"anandam/internal/config"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Fallback copy served when the generator is disabled or unavailable.
const (
	FallbackAdvice      = "Our AI stylist is currently busy. Please try again later!"
	FallbackDescription = "High quality fashion item carefully curated for your needs."
)

// Generator produces text for a prompt. Satisfied by the Gemini client and
// by test doubles.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator implements Generator against the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed text generator.
func NewGeminiGenerator(ctx context.Context, cfg config.StylistConfig) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiGenerator{client: client, model: cfg.Model}, nil
}

// GenerateText sends a prompt and returns the response text.
func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// Service wraps a Generator with the storefront's prompts and fallbacks.
type Service struct {
	gen    Generator
	logger zerolog.Logger
}

// NewService creates a stylist service. A nil generator disables generation
// and every call returns the fallback copy.
func NewService(gen Generator, logger zerolog.Logger) *Service {
	return &Service{
		gen:    gen,
		logger: logger.With().Str("service", "stylist").Logger(),
	}
}

// FashionAdvice returns styling tips for a product.
func (s *Service) FashionAdvice(ctx context.Context, productName, description string) string {
	prompt := fmt.Sprintf(
		"As an expert fashion stylist for Anandam Fashion, provide 3 styling tips for this product: %q - %s. "+
			"Focus on accessories, footwear, and occasion. Keep it concise and trendy.",
		productName, description,
	)
	return s.generate(ctx, prompt, FallbackAdvice)
}

// ProductDescription returns marketing copy for a catalogue entry.
func (s *Service) ProductDescription(ctx context.Context, name string, category string) string {
	prompt := fmt.Sprintf(
		"Generate a luxury product description for a fashion item named %q in the %q category. "+
			"Focus on comfort, quality, and style. Max 50 words.",
		name, category,
	)
	return s.generate(ctx, prompt, FallbackDescription)
}

func (s *Service) generate(ctx context.Context, prompt, fallback string) string {
	if s.gen == nil {
		return fallback
	}

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("text generation failed, serving fallback copy")
		return fallback
	}

	return text
}
