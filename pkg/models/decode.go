package models

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeCreateDeploymentOptions reads a YAML (or JSON) request document.
//
// Decoding is strict: a key the schema does not define fails with
// ErrUnknownField rather than being dropped. An empty document is a valid
// request in which every field is left to the engine.
func DecodeCreateDeploymentOptions(r io.Reader) (CreateDeploymentOptions, error) {
	var opts CreateDeploymentOptions

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return CreateDeploymentOptions{}, nil
		}
		return CreateDeploymentOptions{}, schemaError(err)
	}
	return opts, nil
}

// schemaError classifies a yaml decoding failure.
func schemaError(err error) error {
	var typeErr *yaml.TypeError
	if !errors.As(err, &typeErr) {
		return fmt.Errorf("decode deployment options: %w", err)
	}

	for _, msg := range typeErr.Errors {
		if strings.Contains(msg, "not found in type") {
			return NewFieldError("", "", strings.Join(typeErr.Errors, "; "), ErrUnknownField)
		}
	}
	return fmt.Errorf("decode deployment options: %w", err)
}
