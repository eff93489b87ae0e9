package config

// Spacing bounds for a rendered board square.
const (
	MinSpacing = 1
	MaxSpacing = 5
)

// DisplayConfig holds settings related to board rendering.
type DisplayConfig struct {
	// Unicode draws pieces with chess glyphs instead of letters
	Unicode bool `json:"unicode"`

	// Spacing is the width of a square in unicode mode
	Spacing int `json:"spacing"`

	// Color enables ANSI colours
	Color bool `json:"color"`

	// Flip shows the board from Black's side on Black's turn in local games
	Flip bool `json:"flip"`
}

// NewDisplayConfig creates a DisplayConfig with default values.
func NewDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		Unicode: false,
		Spacing: 3,
		Color:   true,
		Flip:    true,
	}
}
