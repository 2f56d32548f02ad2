package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
)

// MaxLabelLen bounds imported labels to what the input row accepts.
const MaxLabelLen = 200

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Todos) == 0 {
		errs = append(errs, fmt.Errorf("todos: at least one to-do is required"))
		return errs
	}

	seen := make(map[string]int)
	for i, t := range schema.Todos {
		prefix := fmt.Sprintf("todos[%d]", i)

		label, err := domain.NormalizeLabel(t.Label)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.label: %w", prefix, err))
		} else {
			if n := len([]rune(label)); n > MaxLabelLen {
				errs = append(errs, fmt.Errorf("%s.label: %d characters exceeds %d", prefix, n, MaxLabelLen))
			}
			key := strings.ToLower(label)
			if first, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%s.label: duplicate of todos[%d] %q", prefix, first, label))
			} else {
				seen[key] = i
			}
		}

		if t.CompletedAt != nil {
			if !t.Done {
				errs = append(errs, fmt.Errorf("%s.completed_at: set on an open to-do", prefix))
			}
			if _, err := time.Parse(time.RFC3339, *t.CompletedAt); err != nil {
				errs = append(errs, fmt.Errorf("%s.completed_at: invalid timestamp %q (expected RFC3339)", prefix, *t.CompletedAt))
			}
		}

		if t.Pomodoros != nil && *t.Pomodoros < 0 {
			errs = append(errs, fmt.Errorf("%s.pomodoros: must be >= 0, got %d", prefix, *t.Pomodoros))
		}
	}

	return errs
}
