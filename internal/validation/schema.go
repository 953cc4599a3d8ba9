// Package validation validates JSON tariff documents against the
// embedded schema before any normalization happens.
package validation

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"porte-calc/internal/errors"
)

const tariffSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["rules"],
  "properties": {
    "rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["origin", "destination", "min_weight", "max_weight", "rate_per_unit", "fixed_fee"],
        "properties": {
          "id": {"type": "string"},
          "origin": {"type": "string", "minLength": 1},
          "destination": {"type": "string", "minLength": 1},
          "carrier": {"type": "string"},
          "min_weight": {"type": "number", "minimum": 0},
          "max_weight": {"type": "number", "minimum": 0},
          "rate_per_unit": {"type": "number", "minimum": 0},
          "fixed_fee": {"type": "number", "minimum": 0},
          "priority": {"type": "integer"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("tariff.schema.json", strings.NewReader(tariffSchema)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile("tariff.schema.json")
	})
	return compiled, compileErr
}

// TariffDocument checks a raw JSON tariff document against the schema.
func TariffDocument(raw []byte) error {
	s, err := schema()
	if err != nil {
		return errors.Internal("tariff schema does not compile", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(errors.TypeMalformedTable, "invalid JSON", err)
	}

	if err := s.Validate(doc); err != nil {
		return errors.Wrap(errors.TypeMalformedRule, "tariff document rejected by schema", err)
	}
	return nil
}
