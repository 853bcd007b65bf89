package source

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed company.schema.json
var companySchemaJSON []byte

// ValidationError reports why a raw record was rejected.
type ValidationError struct {
	Index    int // Zero-based position of the record in its input
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record %d is invalid: %s", e.Index, strings.Join(e.Problems, "; "))
}

var (
	companySchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(companySchemaJSON))
	})

	// fieldTypes maps each known field to its JSON Schema type.
	fieldTypes = sync.OnceValue(func() map[string]string {
		var doc struct {
			Properties map[string]struct {
				Type string `json:"type"`
			} `json:"properties"`
		}
		types := make(map[string]string)
		if err := json.Unmarshal(companySchemaJSON, &doc); err != nil {
			return types
		}
		for name, prop := range doc.Properties {
			types[name] = prop.Type
		}
		return types
	})
)

// ValidateRecord checks a decoded record against the company schema.
func ValidateRecord(index int, raw map[string]any) error {
	s, err := companySchema()
	if err != nil {
		return fmt.Errorf("loading company schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return &ValidationError{Index: index, Problems: problems}
	}
	return nil
}
