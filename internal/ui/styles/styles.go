// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/tide/internal/config"
	"github.com/zjrosen/tide/internal/syntax"
)

var (
	// Status bar chrome
	StatusBarFgColor  = lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#1C1C1C"}
	StatusBarBgColor  = lipgloss.AdaptiveColor{Light: "#BCBCBC", Dark: "#A8A8A8"}
	StatusModeBgColor = lipgloss.AdaptiveColor{Light: "#5F87AF", Dark: "#87AFD7"}
	StatusDirtyColor  = lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#D78700"}

	// Notices
	NoticeInfoColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	NoticeWarnColor  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FECA57"}
	NoticeErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Hints
	TextMutedColor = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"}
)

// Theme holds the styles used to draw the editor. Syntax and gutter colors
// come from configuration; the chrome is fixed.
type Theme struct {
	categories map[syntax.Category]lipgloss.Style

	Gutter     lipgloss.Style
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	Dirty      lipgloss.Style
	Hint       lipgloss.Style
	NoticeInfo lipgloss.Style
	NoticeWarn lipgloss.Style
	NoticeErr  lipgloss.Style
}

// NewTheme builds a Theme from validated theme configuration.
func NewTheme(cfg config.ThemeConfig) Theme {
	fg := func(hex string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if hex != "" {
			s = s.Foreground(lipgloss.Color(hex))
		}
		return s
	}

	return Theme{
		categories: map[syntax.Category]lipgloss.Style{
			syntax.Normal:        fg(cfg.Normal),
			syntax.Keyword:       fg(cfg.Keyword).Bold(true),
			syntax.StringLiteral: fg(cfg.String),
			syntax.Comment:       fg(cfg.Comment).Italic(true),
			syntax.Preprocessor:  fg(cfg.Preprocessor),
			syntax.Number:        fg(cfg.Number),
		},
		Gutter: fg(cfg.LineNumber),
		StatusBar: lipgloss.NewStyle().
			Foreground(StatusBarFgColor).
			Background(StatusBarBgColor),
		StatusMode: lipgloss.NewStyle().
			Bold(true).
			Foreground(StatusBarFgColor).
			Background(StatusModeBgColor),
		Dirty: lipgloss.NewStyle().
			Bold(true).
			Foreground(StatusDirtyColor).
			Background(StatusBarBgColor),
		Hint:       lipgloss.NewStyle().Foreground(TextMutedColor),
		NoticeInfo: lipgloss.NewStyle().Foreground(NoticeInfoColor),
		NoticeWarn: lipgloss.NewStyle().Foreground(NoticeWarnColor),
		NoticeErr:  lipgloss.NewStyle().Bold(true).Foreground(NoticeErrorColor),
	}
}

// DefaultTheme returns the theme for the default configuration.
func DefaultTheme() Theme {
	return NewTheme(config.Defaults().Theme)
}

// Category returns the style for characters of category c.
func (t Theme) Category(c syntax.Category) lipgloss.Style {
	if s, ok := t.categories[c]; ok {
		return s
	}
	return t.categories[syntax.Normal]
}

// Cursor returns the style for the cell under the cursor: the cell's own
// category style, reversed.
func (t Theme) Cursor(c syntax.Category) lipgloss.Style {
	return t.Category(c).Reverse(true)
}
