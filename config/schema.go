package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
)

const schemaResource = "symbridge-config.json"

var compiled = sync.OnceValues(compileSchema)

// Schema returns the JSON Schema (Draft 2020-12) describing config documents.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:             true,
		Anonymous:                  true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(&Config{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func compileSchema() (*santhosh.Schema, error) {
	data, err := Schema()
	if err != nil {
		return nil, err
	}
	compiler := santhosh.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaResource)
}

// validateDocument checks a JSON-encoded config document against Schema.
func validateDocument(data []byte) error {
	sch, err := compiled()
	if err != nil {
		return &bridgeerrors.ConfigError{Err: fmt.Errorf("invalid config schema: %w", err)}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &bridgeerrors.ConfigError{Err: fmt.Errorf("failed to prepare validation object: %w", err)}
	}

	if err := sch.Validate(doc); err != nil {
		var ve *santhosh.ValidationError
		if errors.As(err, &ve) {
			return &bridgeerrors.ConfigError{Field: fieldOf(ve), Err: ve}
		}
		return &bridgeerrors.ConfigError{Err: err}
	}
	return nil
}

// fieldOf returns the instance location of the deepest cause, without the leading slash.
func fieldOf(ve *santhosh.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if len(ve.InstanceLocation) > 0 && ve.InstanceLocation[0] == '/' {
		return ve.InstanceLocation[1:]
	}
	return ve.InstanceLocation
}
