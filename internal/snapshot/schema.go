package snapshot

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaKey identifies a compiled envelope schema. The payload text is part
// of the key so two schemas sharing a name never collide.
type schemaKey struct {
	name    string
	payload string
}

var schemaCache sync.Map // map[schemaKey]*jsonschema.Schema

const envelopeTemplate = `{
  "type": "object",
  "properties": {
    "payload": %s,
    "timestamp": {"type": "integer", "minimum": 0},
    "expiresAt": {"type": "integer", "minimum": 0}
  },
  "required": ["payload", "timestamp", "expiresAt"]
}`

// envelopeSchema returns the compiled envelope schema, embedding the
// payload schema when one is given.
func envelopeSchema(name, payload string) (*jsonschema.Schema, error) {
	if name == "" {
		name = "any"
		payload = "true"
	}
	key := schemaKey{name: name, payload: payload}
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := jsonschema.UnmarshalJSON(strings.NewReader(fmt.Sprintf(envelopeTemplate, payload)))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://snapshot/%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", name, err)
	}

	schemaCache.Store(key, compiled)
	return compiled, nil
}

// validateEnvelope checks raw against the envelope schema.
func validateEnvelope(name, payload, raw string) error {
	compiled, err := envelopeSchema(name, payload)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return compiled.Validate(doc)
}
