package project

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// projectSchema validates the JSON project file shape before decoding.
// Date format and dependency types are checked here so a malformed file
// fails with a schema path instead of a decode error mid-struct.
const projectSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["tasks"],
  "properties": {
    "name": {"type": "string"},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "start_date", "end_date"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "start_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
          "end_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"}
        }
      }
    },
    "dependencies": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["predecessor_id", "successor_id"],
        "properties": {
          "id": {"type": "string"},
          "predecessor_id": {"type": "string", "minLength": 1},
          "successor_id": {"type": "string", "minLength": 1},
          "dependency_type": {
            "enum": ["finish_to_start", "start_to_start", "finish_to_finish", "start_to_finish"]
          }
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("project.schema.json", strings.NewReader(projectSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile("project.schema.json")
	})
	return schema, schemaErr
}
