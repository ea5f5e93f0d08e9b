// Package classify maps raw subject labels to the coarse subject categories
// used to group teachers. Matching walks an ordered keyword list and the first
// keyword contained in the label decides the category.
package classify

import "strings"

// Fallback is returned when no keyword matches.
const Fallback = "其他"

// Rule pairs a keyword with the category it selects.
type Rule struct {
	Keyword  string `json:"keyword" yaml:"keyword"`
	Category string `json:"category" yaml:"category"`
}

// Classifier resolves categories from an ordered rule list. The zero value
// always returns the fallback.
type Classifier struct {
	rules    []Rule
	fallback string
}

// New returns a Classifier over rules. Order is preserved; an empty fallback
// selects Fallback.
func New(rules []Rule, fallback string) *Classifier {
	if fallback == "" {
		fallback = Fallback
	}
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Classifier{rules: cp, fallback: fallback}
}

// Default returns a Classifier over DefaultRules.
func Default() *Classifier { return New(DefaultRules(), Fallback) }

// Category returns the category of the first rule whose keyword occurs in label.
func (c *Classifier) Category(label string) string {
	if c == nil {
		return Fallback
	}
	for _, r := range c.rules {
		if r.Keyword != "" && strings.Contains(label, r.Keyword) {
			return r.Category
		}
	}
	if c.fallback == "" {
		return Fallback
	}
	return c.fallback
}

// Rules returns a copy of the rule list in priority order.
func (c *Classifier) Rules() []Rule {
	if c == nil {
		return nil
	}
	cp := make([]Rule, len(c.rules))
	copy(cp, c.rules)
	return cp
}
