package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// volumesSchema describes the part of the volumes response we read.
// Every field is optional; an item without an id is still shown.
const volumesSchema = `{
  "type": "object",
  "properties": {
    "totalItems": {"type": "integer"},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "volumeInfo": {
            "type": "object",
            "properties": {
              "title": {"type": "string"},
              "authors": {"type": "array", "items": {"type": "string"}},
              "description": {"type": "string"},
              "imageLinks": {
                "type": "object",
                "properties": {"thumbnail": {"type": "string"}}
              }
            }
          }
        }
      }
    }
  }
}`

func compileSchema() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(volumesSchema))
}

// validate checks data against the volumes schema. Malformed JSON is reported as an error too.
func validate(schema *gojsonschema.Schema, data []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("parse body: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("unexpected response shape: %s", strings.Join(msgs, "; "))
}
