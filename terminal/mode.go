package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ModeKind selects how color runs are serialized
type ModeKind uint8

const (
	ModeNone         ModeKind = iota // plain text, colors dropped
	ModeHTML                         // <span class="{prefix}{name}">
	ModeTerminalFg                   // SGR 38 / 39
	ModeTerminalBg                   // SGR 48 / 49
)

// Depth indicates terminal color capability
type Depth uint8

const (
	DepthTrueColor Depth = iota // 24-bit RGB
	Depth256                    // xterm-256 palette
)

// ColorMode is the policy turning per-cell color runs into control sequences
// Mixing two modes in one composition is unsupported: a string rendered with one
// mode must be re-read with the same mode
type ColorMode struct {
	Kind   ModeKind
	Prefix string // HTML class prefix
	Depth  Depth  // terminal modes only
}

// None returns the mode that drops all colors
func None() ColorMode {
	return ColorMode{Kind: ModeNone}
}

// HTML returns the markup mode with the given class prefix
func HTML(prefix string) ColorMode {
	return ColorMode{Kind: ModeHTML, Prefix: prefix}
}

// TerminalFg returns the truecolor foreground mode
func TerminalFg() ColorMode {
	return ColorMode{Kind: ModeTerminalFg}
}

// TerminalBg returns the truecolor background mode
func TerminalBg() ColorMode {
	return ColorMode{Kind: ModeTerminalBg}
}

// WithDepth returns a copy of m using the given terminal depth
func (m ColorMode) WithDepth(d Depth) ColorMode {
	m.Depth = d
	return m
}

// IsTerminal reports whether the mode emits ANSI sequences
func (m ColorMode) IsTerminal() bool {
	return m.Kind == ModeTerminalFg || m.Kind == ModeTerminalBg
}

func (m ColorMode) String() string {
	switch m.Kind {
	case ModeNone:
		return "none"
	case ModeHTML:
		return "html"
	case ModeTerminalFg:
		if m.Depth == Depth256 {
			return "fg256"
		}
		return "fg"
	case ModeTerminalBg:
		if m.Depth == Depth256 {
			return "bg256"
		}
		return "bg"
	}
	return fmt.Sprintf("ColorMode(%d)", m.Kind)
}

// ParseColorMode resolves none|html|fg|bg|fg256|bg256 (terminal is an alias of fg)
func ParseColorMode(name, htmlPrefix string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "plain":
		return None(), nil
	case "html":
		return HTML(htmlPrefix), nil
	case "fg", "terminal", "foreground":
		return TerminalFg(), nil
	case "bg", "background":
		return TerminalBg(), nil
	case "fg256":
		return TerminalFg().WithDepth(Depth256), nil
	case "bg256":
		return TerminalBg().WithDepth(Depth256), nil
	}
	return None(), fmt.Errorf("unknown color mode %q (expected none, html, fg, bg, fg256 or bg256)", name)
}

// DetectDepth determines terminal color capability from environment
func DetectDepth() Depth {
	// 1. Check COLORTERM (highest priority, set by modern terminals)
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return DepthTrueColor
	}

	// 2. Check terminal-specific env vars
	for _, key := range []string{
		"KITTY_WINDOW_ID",
		"KONSOLE_VERSION",
		"ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID",
		"ALACRITTY_LOG",
		"WEZTERM_PANE",
	} {
		if os.Getenv(key) != "" {
			return DepthTrueColor
		}
	}

	// 3. Check TERM for known true color terminals
	termLower := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(termLower, "truecolor") ||
		strings.Contains(termLower, "24bit") ||
		strings.Contains(termLower, "direct") {
		return DepthTrueColor
	}

	// 4. Default to 256-color
	return Depth256
}
