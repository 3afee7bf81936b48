package snapshot

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "snapshot.schema.json"

// schemaJSON describes the shape of a snapshot. Store invariants (unique
// ids, non-blank names) are checked on import, not here.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "task snapshot",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "complete"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "integer"},
      "name": {"type": "string"},
      "complete": {"type": "boolean"}
    }
  }
}`

var snapshotSchema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// SchemaError reports the first place a document departs from the snapshot
// shape. Path is a dotted path such as "[2].name"; empty means the root.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid snapshot: %s", e.Message)
	}
	return fmt.Sprintf("invalid snapshot at %s: %s", e.Path, e.Message)
}

func validateShape(doc interface{}) error {
	err := snapshotSchema.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &SchemaError{Message: err.Error()}
	}

	var result *SchemaError
	collectSchemaErrors(ve, &result)
	if result != nil {
		return result
	}
	return &SchemaError{Message: ve.Message}
}

// collectSchemaErrors keeps the first leaf cause, which names the offending
// field rather than the enclosing array.
func collectSchemaErrors(err *jsonschema.ValidationError, result **SchemaError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*result = &SchemaError{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		}
		return
	}

	for _, cause := range err.Causes {
		if *result == nil {
			collectSchemaErrors(cause, result)
		}
	}
}

// jsonPointerToPath turns "/2/name" into "[2].name".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" || ptr == "/" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
