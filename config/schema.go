package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SchemaColumn declares one input column the scoring model expects.
type SchemaColumn struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"` // "numeric" or "categorical"
	Default interface{} `json:"default,omitempty"`
}

// ModelSchema is the scoring model's declared input contract, loaded once
// at startup and treated as read-only afterwards.
type ModelSchema struct {
	Version string         `json:"version"`
	Columns []SchemaColumn `json:"columns"`
}

var (
	modelSchema *ModelSchema
	schemaLock  sync.RWMutex
)

// LoadModelSchema loads the model input schema from file.
func LoadModelSchema(path string) error {
	schemaLock.Lock()
	defer schemaLock.Unlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}

	var schema ModelSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return fmt.Errorf("failed to parse schema: %v", err)
	}

	if len(schema.Columns) == 0 {
		return fmt.Errorf("schema declares no columns")
	}

	modelSchema = &schema
	return nil
}

// GetModelSchema returns the loaded schema, or nil if none was loaded.
func GetModelSchema() *ModelSchema {
	schemaLock.RLock()
	defer schemaLock.RUnlock()
	return modelSchema
}

// SetModelSchema replaces the loaded schema. Intended for tests.
func SetModelSchema(schema *ModelSchema) {
	schemaLock.Lock()
	defer schemaLock.Unlock()
	modelSchema = schema
}

// ColumnNames returns the declared column names in model order.
func (s *ModelSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// DefaultFor returns the neutral default for a declared column: the
// configured default when present, otherwise 0 for numeric columns and
// "Unknown" for categorical ones.
func (s *ModelSchema) DefaultFor(name string) interface{} {
	for _, col := range s.Columns {
		if col.Name != name {
			continue
		}
		if col.Default != nil {
			return col.Default
		}
		if col.Type == "categorical" {
			return "Unknown"
		}
		return float64(0)
	}
	return float64(0)
}
