// Package scenarios runs YAML-described extraction scenarios end to end:
// document pages go through the extractor and entity builder, and the
// resulting dataset is compared with the expectations of the scenario.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fengshan-hs/timetable/core/extract"
)

type PageDef struct {
	Text  string     `yaml:"text"`
	Table [][]string `yaml:"table,omitempty"`
}

func (p PageDef) ToModel() extract.Page {
	return extract.Page{Text: p.Text, Table: p.Table}
}

type TeacherDef struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	AdminRole string `yaml:"admin_role,omitempty"`
	Adjunct   bool   `yaml:"adjunct,omitempty"`
	Homeroom  bool   `yaml:"homeroom,omitempty"`
}

type EntryDef struct {
	Teacher string `yaml:"teacher"`
	Class   string `yaml:"class"`
	Subject string `yaml:"subject"`
	Day     int    `yaml:"day"`
	Period  int    `yaml:"period"`
}

type Expected struct {
	Teachers  []TeacherDef   `yaml:"teachers"`
	Schedules []EntryDef     `yaml:"schedules"`
	Classes   []string       `yaml:"classes"`
	Skipped   map[string]int `yaml:"skipped,omitempty"`
	Pages     map[string]int `yaml:"pages,omitempty"`
}

type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Pages       []PageDef `yaml:"pages"`
	// RoundTrip also sends the dataset through the workbook and back.
	RoundTrip bool     `yaml:"round_trip,omitempty"`
	Expected  Expected `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
