// Package llm wraps the Gemini API behind a small client interface.
package llm

import (
	"os"
	"strconv"
)

// ModelTier selects between a fast model and a stronger one.
type ModelTier string

const (
	// TierLite is for short rewrites and extraction
	TierLite ModelTier = "lite"
	// TierStandard is for structured output over a whole resume
	TierStandard ModelTier = "standard"
)

// DefaultTemperature keeps output close to the source resume.
const DefaultTemperature float32 = 0.2

// Config holds model selection for the client.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// ConfigFromEnv applies GEMINI_MODEL and GEMINI_TEMPERATURE over the
// defaults. Unparseable temperatures are ignored.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg = cfg.WithModel(TierStandard, model)
	}
	if raw := os.Getenv("GEMINI_TEMPERATURE"); raw != "" {
		if t, err := strconv.ParseFloat(raw, 32); err == nil && t >= 0 && t <= 2 {
			cfg.Temperature = float32(t)
		}
	}
	return cfg
}

// GetModel returns the model for tier, falling back to the standard model
// and then the lite one.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
