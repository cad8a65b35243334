package species

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed species.schema.json
var schemaJSON []byte

const schemaURL = "https://terrarium.local/schemas/species.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add species schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile species schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// DecodeJSON parses a JSON array of species records. The document is checked
// against the embedded schema, then every record is validated.
func DecodeJSON(data []byte) ([]Record, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse species json: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("species schema: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode species json: %w", err)
	}
	if err := ValidateAll(records); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeYAML parses a YAML list of species records. YAML input is converted to
// JSON so it passes through the same schema check as DecodeJSON.
func DecodeYAML(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode species yaml: %w", err)
	}
	js, err := json.Marshal(normalize(records))
	if err != nil {
		return nil, fmt.Errorf("re-encode species yaml: %w", err)
	}
	return DecodeJSON(js)
}

// EncodeJSON writes records as an indented JSON array.
func EncodeJSON(records []Record) ([]byte, error) {
	data, err := json.MarshalIndent(normalize(records), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode species json: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML writes records as a YAML list.
func EncodeYAML(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(records)); err != nil {
		return nil, fmt.Errorf("encode species yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode species yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DNA returns a compact JSON fingerprint of the registry's records, suitable
// for storing alongside a score.
func (r *Registry) DNA() (string, error) {
	data, err := json.Marshal(r.Records())
	if err != nil {
		return "", fmt.Errorf("encode ecosystem dna: %w", err)
	}
	return string(data), nil
}

func normalize(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = cloneRecord(rec)
	}
	return out
}
