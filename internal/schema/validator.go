package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-sitesource/pkg/attrs"
)

var (
	ErrSchemaInvalid   = errors.New("schema: attribute schema invalid")
	ErrSchemaViolation = errors.New("schema: attribute document violates schema")
	errSchemaRequired  = errors.New("schema: schema document is required")
)

// Validator checks parsed attribute documents against a compiled JSON schema.
type Validator struct {
	compiled *jsonschema.Schema
}

// New compiles the supplied schema document. A nil schema returns a nil
// validator, which accepts everything.
func New(schema map[string]any) (*Validator, error) {
	if schema == nil {
		return nil, nil
	}
	compiled, err := compile(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate checks the attribute document. Violations wrap ErrSchemaViolation
// and list the failing locations.
func (v *Validator) Validate(doc *attrs.Map) error {
	if v == nil || v.compiled == nil {
		return nil
	}

	payload, err := roundTrip(doc.Interface())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if err := v.compiled.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrSchemaViolation, describe(validationErr))
		}
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

func compile(schema map[string]any) (*jsonschema.Schema, error) {
	if schema == nil {
		return nil, errSchemaRequired
	}
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("attributes.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("attributes.json")
}

// roundTrip re-decodes the payload through encoding/json so the validator
// sees the numeric and container types it expects.
func roundTrip(payload map[string]any) (any, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func describe(err *jsonschema.ValidationError) string {
	issues := []string{}
	var walk func(node *jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			issues = append(issues, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(issues, "; ")
}
