package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	theme "github.com/goliatone/go-theme"
)

type styles struct {
	header lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	plain  bool
}

// newStyles derives terminal styles from theme tokens. Missing tokens fall
// back to ANSI palette indexes.
func newStyles(cfg *theme.RendererConfig, noColor bool) styles {
	if noColor {
		return styles{plain: true}
	}
	accent, muted, errColor := "33", "245", "196"
	if cfg != nil {
		if v := cfg.Tokens["accent"]; v != "" {
			accent = v
		}
		if v := cfg.Tokens["muted"]; v != "" {
			muted = v
		}
		if v := cfg.Tokens["error"]; v != "" {
			errColor = v
		}
	}
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color(errColor)),
	}
}

func (s styles) Header(text string) string {
	if s.plain {
		return text
	}
	return s.header.Render(text)
}

func (s styles) Muted(text string) string {
	if s.plain {
		return text
	}
	return s.muted.Render(text)
}

func (s styles) Error(text string) string {
	if s.plain {
		return text
	}
	return s.err.Render(text)
}

// Block stacks lines vertically.
func (s styles) Block(lines ...string) string {
	if s.plain {
		return strings.Join(lines, "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
