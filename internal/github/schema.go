package github

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const releaseSchemaURL = "https://github.com/handiism/release-fetcher/release.schema.json"

//go:embed release.schema.json
var releaseSchemaJSON []byte

var (
	releaseSchemaOnce sync.Once
	releaseSchema     *jsonschema.Schema
	releaseSchemaErr  error
)

// compiledReleaseSchema compiles the embedded schema on first use.
func compiledReleaseSchema() (*jsonschema.Schema, error) {
	releaseSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(releaseSchemaJSON))
		if err != nil {
			releaseSchemaErr = fmt.Errorf("parse release schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(releaseSchemaURL, doc); err != nil {
			releaseSchemaErr = fmt.Errorf("add release schema: %w", err)
			return
		}
		releaseSchema, releaseSchemaErr = c.Compile(releaseSchemaURL)
	})
	return releaseSchema, releaseSchemaErr
}

// validateManifest checks a raw release manifest against the embedded schema.
// Invalid JSON and schema violations are both reported as ManifestParseError.
func validateManifest(body []byte) error {
	sch, err := compiledReleaseSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &ManifestParseError{Err: err}
	}
	if err := sch.Validate(inst); err != nil {
		return &ManifestParseError{Err: err}
	}
	return nil
}
