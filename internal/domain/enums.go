package domain

// TodoView selects which list a query returns.
type TodoView string

const (
	ViewActive    TodoView = "active"
	ViewCompleted TodoView = "completed"
	ViewAll       TodoView = "all"
)

// Includes reports whether a to-do with the given completion flag belongs
// in the view.
func (v TodoView) Includes(done bool) bool {
	switch v {
	case ViewActive:
		return !done
	case ViewCompleted:
		return done
	default:
		return true
	}
}
