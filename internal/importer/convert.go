package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into to-dos ready for
// persistence. Sequence numbers are left for the caller to allocate.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, now time.Time) ([]*domain.Todo, error) {
	now = now.UTC().Truncate(time.Second)
	todos := make([]*domain.Todo, 0, len(schema.Todos))

	for i, t := range schema.Todos {
		todo, err := domain.NewTodo(t.Label, now)
		if err != nil {
			return nil, fmt.Errorf("todos[%d]: %w", i, err)
		}
		todo.ID = uuid.New().String()

		if t.Pomodoros != nil {
			todo.Pomodoros = *t.Pomodoros
		}

		if t.Done {
			completedAt := now
			if t.CompletedAt != nil {
				parsed, err := time.Parse(time.RFC3339, *t.CompletedAt)
				if err != nil {
					return nil, fmt.Errorf("todos[%d].completed_at: %w", i, err)
				}
				completedAt = parsed.UTC()
			}
			todo.SetDone(true, completedAt)
			todo.UpdatedAt = now
		}

		todos = append(todos, todo)
	}

	return todos, nil
}
