// Package scenario reads and writes simulation input as YAML. Documents are
// checked against an embedded JSON schema before they are decoded, so shape
// errors are reported with a JSON pointer to the offending field.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/treasuremap/treasure-sim/sim"
)

//go:embed scenario.schema.json
var schemaJSON string

const schemaURL = "scenario.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Schema returns the compiled scenario schema.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("adding scenario schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Load reads and parses a YAML scenario file.
func Load(path string) (*sim.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the schema and decodes it.
// Uses strict parsing: unrecognized keys are rejected.
func Parse(data []byte) (*sim.Scenario, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var scn sim.Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scn); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &scn, nil
}

// Validate checks a YAML document against the scenario schema.
func Validate(data []byte) error {
	s, err := Schema()
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	v, err := toJSONValue(doc)
	if err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	return nil
}

// toJSONValue round-trips a YAML value through encoding/json so the
// validator sees plain JSON types (json.Number, map[string]any, []any).
func toJSONValue(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Marshal encodes scn as YAML.
func Marshal(scn *sim.Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(scn); err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes scn as YAML to path.
func Save(path string, scn *sim.Scenario) error {
	data, err := Marshal(scn)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
