// Package validation checks raw solicitation documents written by the
// upstream ingestion pipeline before they are trusted by the extractor.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// solicitationSchema describes the document shape the ingestion pipeline
// writes for each solicitation. Only the fields the matcher relies on are
// constrained; additional fields pass through untouched.
const solicitationSchema = `{
	"type": "object",
	"required": ["number", "title", "state", "responseDeadline"],
	"properties": {
		"number":           {"type": "string", "minLength": 1},
		"title":            {"type": "string", "minLength": 1},
		"description":      {"type": "string"},
		"agency":           {"type": "string"},
		"state":            {"type": "string", "pattern": "^[A-Za-z]{2}$"},
		"city":             {"type": "string"},
		"zip":              {"type": "string"},
		"centerLatitude":   {"type": "number", "minimum": -90, "maximum": 90},
		"centerLongitude":  {"type": "number", "minimum": -180, "maximum": 180},
		"radiusMiles":      {"type": "number", "minimum": 0},
		"responseDeadline": {"type": "string"}
	}
}`

var compiledSolicitationSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(solicitationSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid solicitation schema: %v", err))
	}
	compiledSolicitationSchema = schema
}

// ValidateSolicitationDocument validates one raw document. A non-nil
// error describes every violated constraint.
func ValidateSolicitationDocument(doc []byte) error {
	result, err := compiledSolicitationSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate solicitation document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return fmt.Errorf("solicitation document invalid: %s", strings.Join(violations, "; "))
}
