package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field ranges and the per-slot uniqueness of schedule entries.
func (d Dataset) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid dataset: %s failed %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid dataset: %w", err)
	}
	type slot struct {
		name   string
		day    int
		period int
	}
	seen := make(map[slot]string, len(d.Schedules))
	for _, s := range d.Schedules {
		k := slot{s.TeacherName, s.Day, s.Period}
		if prev, ok := seen[k]; ok {
			return fmt.Errorf("invalid dataset: schedules %s and %s share teacher %q day %d period %d", prev, s.ID, s.TeacherName, s.Day, s.Period)
		}
		seen[k] = s.ID
	}
	return nil
}
