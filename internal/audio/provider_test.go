package audio

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "openai" {
		t.Errorf("Expected provider 'openai', got '%s'", config.Provider)
	}
	if config.OutputFormat != "mp3" {
		t.Errorf("Expected format 'mp3', got '%s'", config.OutputFormat)
	}
	if config.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("Expected model 'gpt-4o-mini-tts', got '%s'", config.OpenAIModel)
	}
	if config.OpenAISpeed != 0.9 {
		t.Errorf("Expected speed 0.9, got %f", config.OpenAISpeed)
	}
	if !strings.Contains(config.OpenAIInstruction, "Mandarin") {
		t.Error("Expected default instruction to mention Mandarin")
	}
}

func TestNewProviderOpenAIRequiresKey(t *testing.T) {
	config := DefaultProviderConfig()
	config.OpenAIKey = ""

	if _, err := NewProvider(config); err == nil {
		t.Error("Expected error for OpenAI provider without API key")
	}
}

func TestNewProviderUnknown(t *testing.T) {
	config := DefaultProviderConfig()
	config.Provider = "festival"

	if _, err := NewProvider(config); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

// stubProvider is a controllable Provider for fallback tests
type stubProvider struct {
	name string
	fail bool
	used bool
}

func (s *stubProvider) GenerateAudio(ctx context.Context, text, outputFile string) error {
	s.used = true
	if s.fail {
		return fmt.Errorf("%s failed", s.name)
	}
	return nil
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) IsAvailable() error {
	if s.fail {
		return fmt.Errorf("%s unavailable", s.name)
	}
	return nil
}

func TestProviderWithFallback(t *testing.T) {
	primary := &stubProvider{name: "primary", fail: true}
	fallback := &stubProvider{name: "fallback"}

	p := NewProviderWithFallback(primary, fallback)

	if err := p.GenerateAudio(context.Background(), "好", "out.mp3"); err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if !fallback.used {
		t.Error("Expected fallback provider to be used")
	}

	if !strings.Contains(p.Name(), "primary") || !strings.Contains(p.Name(), "fallback") {
		t.Errorf("Expected combined name, got %q", p.Name())
	}
}

func TestProviderWithFallbackPrimaryWins(t *testing.T) {
	primary := &stubProvider{name: "primary"}
	fallback := &stubProvider{name: "fallback"}

	p := NewProviderWithFallback(primary, fallback)

	if err := p.GenerateAudio(context.Background(), "好", "out.mp3"); err != nil {
		t.Fatalf("GenerateAudio failed: %v", err)
	}
	if fallback.used {
		t.Error("Fallback should not be used when primary succeeds")
	}
}

func TestProviderWithFallbackAvailability(t *testing.T) {
	bothDown := NewProviderWithFallback(
		&stubProvider{name: "a", fail: true},
		&stubProvider{name: "b", fail: true},
	)
	if err := bothDown.IsAvailable(); err == nil {
		t.Error("Expected error when both providers are unavailable")
	}

	oneUp := NewProviderWithFallback(
		&stubProvider{name: "a", fail: true},
		&stubProvider{name: "b"},
	)
	if err := oneUp.IsAvailable(); err != nil {
		t.Errorf("Expected nil when fallback is available, got %v", err)
	}
}
