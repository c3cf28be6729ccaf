package store

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// studentsSchema describes the on-disk format: a JSON array of records
// with exactly the four fields, bounds matching the student package.
const studentsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["roll_number", "name", "age", "cgpa"],
    "additionalProperties": false,
    "properties": {
      "roll_number": {"type": "integer", "minimum": 1},
      "name": {"type": "string", "minLength": 1},
      "age": {"type": "integer", "minimum": 5, "maximum": 120},
      "cgpa": {"type": "number", "minimum": 0.0, "maximum": 4.0}
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(studentsSchema))
	})
	return schema, schemaErr
}

// CheckSchema validates raw file bytes against the students schema.
// Used on every load and by the `check` subcommand.
func CheckSchema(data []byte) error {
	return checkSchema(data)
}

func checkSchema(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	// Report the first few problems, not a wall of text.
	msg := ""
	for i, desc := range errs {
		if i == 3 {
			msg += fmt.Sprintf("\n- ... and %d more", len(errs)-3)
			break
		}
		if i > 0 {
			msg += "\n- "
		}
		msg += desc.String()
	}
	return fmt.Errorf("schema validation failed: %s", msg)
}
