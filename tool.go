package webfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Tool interface - high-level typed tool definition, exposed to a host agent
// by the MCP server or called directly from the CLI.
type Tool interface {
	Name() string
	Description() string
	Schema() *ToolSchema
	Run(ctx context.Context, args json.RawMessage) (json.RawMessage, error)
}

// ToolSchema is a tool's JSON schema for its input object. It marshals into
// a draft-07 style object schema.
type ToolSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*ToolProperty `json:"properties"`
	Required   []string                 `json:"required"`
}

// ToolProperty defines a single property in the tool schema
type ToolProperty struct {
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Enum        []string      `json:"enum,omitempty"`
	Items       *ToolProperty `json:"items,omitempty"`
}

// JSON renders the schema as raw bytes for transports that want the schema
// verbatim (e.g. MCP tool registration).
func (s *ToolSchema) JSON() json.RawMessage {
	buf, err := json.Marshal(s)
	if err != nil {
		// schema is built from static struct tags, this can't fail
		panic(fmt.Sprintf("webfetch: marshaling tool schema: %v", err))
	}
	return buf
}

// Func creates a typed tool with automatic JSON marshaling
func Func[In, Out any](name, description string, run func(ctx context.Context, in In) (Out, error)) Tool {
	return &typedFunc[In, Out]{
		name:        name,
		description: description,
		run:         run,
	}
}

// typedFunc wraps a typed function as a Tool
type typedFunc[In, Out any] struct {
	name        string
	description string
	run         func(ctx context.Context, in In) (Out, error)
}

func (t *typedFunc[In, Out]) Name() string        { return t.name }
func (t *typedFunc[In, Out]) Description() string { return t.description }

func (t *typedFunc[In, Out]) Schema() *ToolSchema {
	var in In
	return generateSchema(in)
}

func (t *typedFunc[In, Out]) Run(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var in In
	if len(args) > 0 {
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("tool %s: unmarshaling input: %w", t.name, err)
		}
	}
	out, err := t.run(ctx, in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// generateSchema creates a ToolSchema from a struct type
// Supported struct tags:
//   - `json:"fieldname"` - JSON field name
//   - `description:"text"` - field description for the schema
//   - `enums:"a,b,c"` - allowed values (comma-separated)
//   - `is:"required"` - marks field as required (presence only, no value)
func generateSchema(v any) *ToolSchema {
	schema := &ToolSchema{
		Type:       "object",
		Properties: make(map[string]*ToolProperty),
		Required:   []string{},
	}

	t := reflect.TypeOf(v)
	if t == nil {
		return schema
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return schema
	}

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		// Get JSON field name
		name := field.Name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" && parts[0] != "-" {
				name = parts[0]
			}
		}

		// Get description
		description := field.Tag.Get("description")

		// Get enums
		var enums []string
		if enumTag := field.Tag.Get("enums"); enumTag != "" {
			enums = strings.Split(enumTag, ",")
		}

		prop := schemaType(field.Type)
		prop.Description = description
		prop.Enum = enums
		schema.Properties[name] = prop

		// Check if required
		if field.Tag.Get("is") == "required" {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

func schemaType(t reflect.Type) *ToolProperty {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	prop := &ToolProperty{Type: "string"}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		prop.Type = "integer"
	case reflect.Float32, reflect.Float64:
		prop.Type = "number"
	case reflect.Bool:
		prop.Type = "boolean"
	case reflect.Slice, reflect.Array:
		prop.Type = "array"
		prop.Items = schemaType(t.Elem())
	case reflect.Struct, reflect.Map:
		prop.Type = "object"
	}

	return prop
}
