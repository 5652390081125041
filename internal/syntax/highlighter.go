package syntax

import (
	"github.com/zjrosen/tide/internal/cachemanager"
	"github.com/zjrosen/tide/internal/log"
)

// Line is the classification of one document line.
type Line struct {
	// Categories holds one entry per rune of the line. It may be shared with
	// the cache and must not be modified.
	Categories []Category
	// Entry is the state carried into the line; Exit the state carried out.
	Entry LexState
	Exit  LexState
}

type lineInput struct {
	text  []rune
	state LexState
}

func lineKey(in lineInput) string {
	return in.state.key() + ":" + string(in.text)
}

func classifyLine(in lineInput) Line {
	cats, exit := Classify(in.text, in.state)
	return Line{Categories: cats, Entry: in.state, Exit: exit}
}

// Highlighter classifies whole documents, threading LexState from the first
// line every time. Results of Classify are memoized per (entry state, text),
// which is safe because Classify is pure: an edit only costs re-scanning the
// lines whose text or entry state actually changed.
type Highlighter struct {
	lines *cachemanager.Memo[lineInput, Line]
}

// NewHighlighter creates a Highlighter backed by cache. A nil cache
// re-classifies every line on every call.
func NewHighlighter(cache cachemanager.Cache[Line]) *Highlighter {
	h := &Highlighter{
		lines: cachemanager.NewMemo(cache, lineKey, classifyLine),
	}
	log.Debug(log.CatSyntax, "highlighter ready", "cached", h.lines.Enabled())
	return h
}

// NewDefaultHighlighter creates a Highlighter with an in-memory cache when
// useCache is set.
func NewDefaultHighlighter(useCache bool) *Highlighter {
	if !useCache {
		return NewHighlighter(nil)
	}
	return NewHighlighter(cachemanager.NewMemory[Line]("syntax", cachemanager.DefaultTTL, cachemanager.DefaultCleanupInterval))
}

// Document classifies lines top to bottom from a fresh LexState.
func (h *Highlighter) Document(lines [][]rune) []Line {
	out := make([]Line, len(lines))
	var state LexState
	for i, text := range lines {
		out[i] = h.lines.Get(lineInput{text: text, state: state})
		state = out[i].Exit
	}
	return out
}

// Prefix classifies only the first n lines, which is all a viewport that
// ends at line n needs. n is clamped to len(lines).
func (h *Highlighter) Prefix(lines [][]rune, n int) []Line {
	n = max(0, min(n, len(lines)))
	return h.Document(lines[:n])
}

// Stats returns cache hit and miss counts.
func (h *Highlighter) Stats() (hits, misses int) {
	st := h.lines.Stats()
	return st.Hits, st.Misses
}

// Spans groups a category slice into runs of equal category, returned as
// half-open [Start, End) rune ranges.
func Spans(cats []Category) []Span {
	if len(cats) == 0 {
		return nil
	}
	spans := make([]Span, 0, 4)
	start := 0
	for i := 1; i <= len(cats); i++ {
		if i == len(cats) || cats[i] != cats[start] {
			spans = append(spans, Span{Start: start, End: i, Category: cats[start]})
			start = i
		}
	}
	return spans
}

// Span is a run of characters sharing one category.
type Span struct {
	Start    int
	End      int
	Category Category
}
