package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/classboard/internal/domain"
	cberrors "github.com/mrz1836/classboard/internal/errors"
)

// Format is a snapshot file encoding.
type Format string

// Supported snapshot formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml or .yml)", cberrors.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodeSnapshot parses a project snapshot. JSON input is checked against the
// embedded schema first. The decoded project must have a valid date envelope.
func DecodeSnapshot(data []byte, format Format) (*domain.Project, error) {
	var p domain.Project
	switch format {
	case FormatJSON:
		if err := CheckSchema(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %w", cberrors.ErrSnapshotInvalid, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %w", cberrors.ErrSnapshotInvalid, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", cberrors.ErrUnsupportedFormat, format)
	}

	if err := p.CheckEnvelope(); err != nil {
		return nil, fmt.Errorf("%w: %w", cberrors.ErrSnapshotInvalid, err)
	}
	return &p, nil
}

// LoadSnapshot reads and decodes a project snapshot file.
func LoadSnapshot(path string) (*domain.Project, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	p, err := DecodeSnapshot(data, format)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return p, nil
}

// DecodeDraft parses a single task draft. Drafts skip the schema check: the
// validation engine reports their problems field by field.
func DecodeDraft(data []byte, format Format) (domain.Task, error) {
	var t domain.Task
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &t)
	case FormatYAML:
		err = yaml.Unmarshal(data, &t)
	default:
		return t, fmt.Errorf("%w: %q", cberrors.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return t, fmt.Errorf("%w: invalid draft: %w", cberrors.ErrMalformedInput, err)
	}
	return t, nil
}

// LoadDraft reads and decodes a task draft file.
func LoadDraft(path string) (domain.Task, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return domain.Task{}, err
	}
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the user on purpose
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to read draft %s: %w", path, err)
	}
	t, err := DecodeDraft(data, format)
	if err != nil {
		return t, fmt.Errorf("draft %s: %w", path, err)
	}
	return t, nil
}

// EncodeSnapshot renders p in the given format.
func EncodeSnapshot(p *domain.Project, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatYAML:
		return yaml.Marshal(p)
	default:
		return nil, fmt.Errorf("%w: %q", cberrors.ErrUnsupportedFormat, format)
	}
}
