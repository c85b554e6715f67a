package insight

import (
	"context"

	"github.com/faizpoerwita/cuan-check/internal/ai"
	"github.com/faizpoerwita/cuan-check/internal/models"
)

// Analysis is one normalized model response.
type Analysis struct {
	// Text is the full cleaned text with the footer, ready for display or
	// sharing as-is.
	Text string `json:"text"`
	// Sections always holds the four canonical keys.
	Sections map[string]string `json:"sections"`
	// Cached marks a result served from the response cache; no upstream
	// exchange happened for it.
	Cached bool `json:"-"`
}

// Service owns the single outbound call per analysis: build the prompt, ask
// the provider once, normalize whatever comes back. No retries, no shared
// state across requests.
type Service struct {
	client     ai.Client
	normalizer *Normalizer
	cache      *Cache
}

// NewService wires the upstream client with a normalizer and an optional
// response cache (nil disables caching).
func NewService(client ai.Client, normalizer *Normalizer, cache *Cache) *Service {
	if normalizer == nil {
		normalizer = NewNormalizer()
	}

	return &Service{client: client, normalizer: normalizer, cache: cache}
}

// Analyze performs one analysis round trip. The prompt and raw upstream body
// are returned alongside the result so the caller can record the exchange
// even when the call fails.
func (s *Service) Analyze(ctx context.Context, snapshot models.Snapshot, profile models.Profile) (Analysis, string, []byte, error) {
	prompt := s.normalizer.BuildPrompt(snapshot, profile)
	key := Key(prompt)

	if cached, ok := s.cache.Get(key); ok {
		cached.Cached = true
		return cached, prompt, nil, nil
	}

	messages := []ai.Message{{Role: "system", Content: prompt}}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return Analysis{}, prompt, raw, err
	}

	result := s.normalizer.Normalize(content)
	analysis := Analysis{Text: result.Text, Sections: result.Sections}

	s.cache.Set(key, analysis)
	return analysis, prompt, raw, nil
}

// Normalizer exposes the configured normalizer for callers that post-process
// text without a round trip.
func (s *Service) Normalizer() *Normalizer {
	return s.normalizer
}
