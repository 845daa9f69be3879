package report

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchema is returned when a document does not match the report schema.
var ErrSchema = errors.New("report does not match schema")

//go:embed schema.json
var schemaJSON string

// Validate checks a raw JSON document against the fixed report schema,
// including the constant values.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate report: %w", err)
	}
	if result.Valid() {
		return nil
	}
	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	sort.Strings(errs)
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(errs, "; "))
}
