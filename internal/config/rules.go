package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/1broseidon/winborder/internal/border"
)

// MatchKind selects which window property a rule inspects.
type MatchKind string

const (
	MatchTitle MatchKind = "title"
	MatchClass MatchKind = "class"
)

// MatchStrategy selects how a rule compares the pattern.
type MatchStrategy string

const (
	StrategyEquals   MatchStrategy = "equals"
	StrategyContains MatchStrategy = "contains"
	StrategyRegex    MatchStrategy = "regex"
)

// WindowRule overrides border settings for matching windows.
type WindowRule struct {
	Match    MatchKind
	Strategy MatchStrategy
	Pattern  string
	Enabled  bool
	// Settings are the global settings with this rule's overrides applied.
	Settings border.Settings

	re *regexp.Regexp
}

// Matches reports whether the rule applies to a window. Equals and contains
// ignore case; regular expressions match anywhere in the value.
func (r *WindowRule) Matches(title, class string) bool {
	value := class
	if r.Match == MatchTitle {
		value = title
	}
	switch r.Strategy {
	case StrategyContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(r.Pattern))
	case StrategyRegex:
		return r.re != nil && r.re.MatchString(value)
	default:
		return strings.EqualFold(value, r.Pattern)
	}
}

func (r *WindowRule) String() string {
	return fmt.Sprintf("%s %s %q", r.Match, r.Strategy, r.Pattern)
}

func parseMatchKind(s string) (MatchKind, error) {
	switch MatchKind(strings.ToLower(strings.TrimSpace(s))) {
	case MatchTitle:
		return MatchTitle, nil
	case MatchClass:
		return MatchClass, nil
	default:
		return "", fmt.Errorf("must be title or class, got %q", s)
	}
}

func parseStrategy(s string) (MatchStrategy, error) {
	switch MatchStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyEquals:
		return StrategyEquals, nil
	case StrategyContains:
		return StrategyContains, nil
	case StrategyRegex:
		return StrategyRegex, nil
	default:
		return "", fmt.Errorf("must be equals, contains or regex, got %q", s)
	}
}

// Rule returns the first rule matching the window, or nil.
func (c *Config) Rule(title, class string) *WindowRule {
	for i := range c.Rules {
		if c.Rules[i].Matches(title, class) {
			return &c.Rules[i]
		}
	}
	return nil
}

// SettingsFor returns the effective settings for a window and whether it
// should get a border at all.
func (c *Config) SettingsFor(title, class string) (border.Settings, bool) {
	if rule := c.Rule(title, class); rule != nil {
		return rule.Settings, rule.Enabled
	}
	return c.Global, true
}
