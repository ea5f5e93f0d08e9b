package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleFile is the on-disk layout of a rules file.
type RuleFile struct {
	Fallback string `json:"fallback" yaml:"fallback"`
	Rules    []Rule `json:"rules" yaml:"rules"`
}

// LoadRules reads a rules file in JSON or YAML. The list keeps file order.
func LoadRules(path string) (RuleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuleFile{}, err
	}
	defer func() { _ = f.Close() }()
	return DecodeRules(f, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// DecodeRules reads a RuleFile from r in the given format.
func DecodeRules(r io.Reader, format string) (RuleFile, error) {
	var rf RuleFile
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&rf); err != nil {
			return rf, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&rf); err != nil {
			return rf, err
		}
	default:
		return rf, fmt.Errorf("unsupported rules format: %s", format)
	}
	for i, rule := range rf.Rules {
		if rule.Keyword == "" || rule.Category == "" {
			return rf, fmt.Errorf("rule %d: keyword and category are required", i)
		}
	}
	return rf, nil
}
