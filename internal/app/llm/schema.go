package llm

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// SchemaFor derives a JSON schema from the struct pointed to by out.
// Named nested structs are inlined so the schema carries no $ref.
func SchemaFor(out interface{}) (*jsonschema.Definition, error) {
	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("structured output target must be a pointer to a struct, got %T", out)
	}

	def, err := jsonschema.GenerateSchemaForType(reflect.New(t.Elem()).Elem().Interface())
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	inlined := inlineRefs(*def, def.Defs)
	inlined.Defs = nil
	return &inlined, nil
}

func inlineRefs(def jsonschema.Definition, defs map[string]jsonschema.Definition) jsonschema.Definition {
	if def.Ref != "" {
		if target, ok := defs[strings.TrimPrefix(def.Ref, "#/$defs/")]; ok {
			if def.Description != "" {
				target.Description = def.Description
			}
			def = target
		}
		def.Ref = ""
	}
	if len(def.Properties) > 0 {
		props := make(map[string]jsonschema.Definition, len(def.Properties))
		for name, prop := range def.Properties {
			props[name] = inlineRefs(prop, defs)
		}
		def.Properties = props
	}
	if def.Items != nil {
		items := inlineRefs(*def.Items, defs)
		def.Items = &items
	}
	def.Defs = nil
	return def
}

// Decode validates content against schema and unmarshals it into out.
// Markdown code fences around the JSON are tolerated and null members are
// treated as absent.
func Decode(schema *jsonschema.Definition, content string, out interface{}) error {
	var raw interface{}
	if err := json.Unmarshal([]byte(StripCodeFence(content)), &raw); err != nil {
		return fmt.Errorf("response is not JSON: %w", err)
	}
	cleaned, err := json.Marshal(dropNulls(raw))
	if err != nil {
		return err
	}
	return jsonschema.VerifySchemaAndUnmarshal(*schema, cleaned, out)
}

func dropNulls(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			if item == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(item)
		}
	case []interface{}:
		for i, item := range t {
			t[i] = dropNulls(item)
		}
	}
	return v
}

// StripCodeFence removes a surrounding ```json ... ``` block if present
func StripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
