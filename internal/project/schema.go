package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	cberrors "github.com/mrz1836/classboard/internal/errors"
)

const schemaURL = "mem://classboard/project.schema.json"

//go:embed schema/project.schema.json
var projectSchemaJSON []byte

//nolint:gochecknoglobals // compiled once on first use
var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	errSchema      error
)

// snapshotSchema returns the compiled project snapshot schema.
func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(projectSchemaJSON)); err != nil {
			errSchema = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, errSchema = compiler.Compile(schemaURL)
		if errSchema != nil {
			errSchema = fmt.Errorf("compile snapshot schema: %w", errSchema)
		}
	})
	return compiledSchema, errSchema
}

// CheckSchema validates raw JSON snapshot bytes against the embedded schema.
// Violations are reported as ErrSnapshotInvalid listing every failing path.
func CheckSchema(data []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", cberrors.ErrSnapshotInvalid, err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("%w: %w", cberrors.ErrSnapshotInvalid, err)
		}
		var problems []string
		collectSchemaProblems(ve, &problems)
		return fmt.Errorf("%w: %s", cberrors.ErrSnapshotInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// collectSchemaProblems flattens the leaf causes of a validation error.
func collectSchemaProblems(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		*out = append(*out, fmt.Sprintf("%s: %s", jsonPointerToPath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(cause, out)
	}
}

// jsonPointerToPath turns "/taches/0/titre" into "taches[0].titre".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return "(root)"
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
