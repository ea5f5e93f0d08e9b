package config

import (
	"fmt"

	"github.com/fengshan-hs/timetable/core/classify"
)

// ClassifierConfig overrides the subject category rules.
type ClassifierConfig struct {
	// Rules replaces the built-in rule list when non-empty.
	Rules []classify.Rule `json:"rules"`
	// RulesFile loads rules from a YAML or JSON file; it wins over Rules.
	RulesFile string `json:"rules_file"`
	// Fallback is returned for subjects no rule matches.
	Fallback string `json:"fallback"`
}

// SetDefaults applies the default fallback category.
func (c *ClassifierConfig) SetDefaults() {
	if c.Fallback == "" {
		c.Fallback = classify.Fallback
	}
}

// Validate checks inline rules.
func (c ClassifierConfig) Validate() error {
	for i, r := range c.Rules {
		if r.Keyword == "" || r.Category == "" {
			return fmt.Errorf("rule %d: keyword and category are required", i)
		}
	}
	return nil
}

// Build returns the classifier described by the section.
func (c ClassifierConfig) Build() (*classify.Classifier, error) {
	if c.RulesFile != "" {
		rf, err := classify.LoadRules(c.RulesFile)
		if err != nil {
			return nil, err
		}
		fallback := rf.Fallback
		if fallback == "" {
			fallback = c.Fallback
		}
		return classify.New(rf.Rules, fallback), nil
	}
	if len(c.Rules) > 0 {
		return classify.New(c.Rules, c.Fallback), nil
	}
	return classify.New(classify.DefaultRules(), c.Fallback), nil
}
