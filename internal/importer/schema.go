package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a to-do list import.
type ImportSchema struct {
	Todos []TodoImport `json:"todos"`
}

// TodoImport defines one to-do in the import file.
type TodoImport struct {
	Label       string  `json:"label"`
	Done        bool    `json:"done,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
	Pomodoros   *int    `json:"pomodoros,omitempty"`
}

// LoadImportSchema reads and parses a to-do import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
