package window

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultGameLabel is the base label of game windows opened without one.
const DefaultGameLabel = "game-webview"

// TokenSource produces the disambiguator appended to a busy base label.
type TokenSource interface {
	Next() string
}

// ClockTokens yields Unix milliseconds, bumped by one when the clock has not
// advanced since the previous token.
type ClockTokens struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

func (c *ClockTokens) Next() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ms := now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return strconv.FormatInt(ms, 10)
}

// CounterTokens yields 1, 2, 3, ...
type CounterTokens struct {
	mu sync.Mutex
	n  uint64
}

func (c *CounterTokens) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return strconv.FormatUint(c.n, 10)
}

// SanitizeLabel maps every character outside [A-Za-z0-9_-] to '-'. Length
// in characters and order are preserved.
func SanitizeLabel(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if isLabelRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func isLabelRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_'
}

// LabelAllocator derives labels for game windows.
type LabelAllocator struct {
	tokens TokenSource
}

func NewLabelAllocator(tokens TokenSource) *LabelAllocator {
	if tokens == nil {
		tokens = &ClockTokens{}
	}
	return &LabelAllocator{tokens: tokens}
}

// Allocate sanitizes requested (empty means absent), falls back to
// DefaultGameLabel and, when the base is live, appends one token. The
// suffixed label is not checked again.
func (a *LabelAllocator) Allocate(requested string, inUse func(string) bool) string {
	base := SanitizeLabel(requested)
	if base == "" {
		base = DefaultGameLabel
	}
	if !inUse(base) {
		return base
	}
	return base + "-" + a.tokens.Next()
}
