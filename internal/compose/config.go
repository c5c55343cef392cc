package compose

import (
	"io"

	"github.com/charmbracelet/log"

	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

// Validator checks individual nodes of a composed definition. Findings are
// recorded in diags and never abort composition.
type Validator interface {
	ValidateField(f *model.Field, diags *diagnostic.Diagnostics)
	ValidateFieldSet(s *model.FieldSet, diags *diagnostic.Diagnostics)
	ValidateMapping(m *model.DisplayMapping, diags *diagnostic.Diagnostics)
}

// Config holds configuration for composition.
type Config struct {
	// MergeDefaultFirst expands the local tier's own default-set references
	// before overlaying them onto the higher tiers.
	MergeDefaultFirst bool
	// Logger receives step-by-step debug output. Nil discards it.
	Logger *log.Logger
	// Validator, if set, is run over every node of each result.
	Validator Validator
}

// DefaultConfig returns the default composition configuration.
func DefaultConfig() Config {
	return Config{
		MergeDefaultFirst: false,
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return log.New(io.Discard)
}
