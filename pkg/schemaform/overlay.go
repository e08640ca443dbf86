package schemaform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overlay carries presentation hints keyed by operation id.
type Overlay struct {
	Operations map[string]OperationOverlay `yaml:"operations"`
}

// OperationOverlay customises the form built for one operation.
type OperationOverlay struct {
	Title       string `yaml:"title"`
	SubmitLabel string `yaml:"submitLabel"`
	// Order lists field paths rendered first; remaining fields follow
	// required-first, then alphabetically.
	Order  []string                `yaml:"order"`
	Fields map[string]FieldOverlay `yaml:"fields"`
}

// FieldOverlay customises a single field, addressed by its dotted path.
type FieldOverlay struct {
	Label       string            `yaml:"label"`
	Placeholder string            `yaml:"placeholder"`
	Help        string            `yaml:"help"`
	Widget      string            `yaml:"widget"`
	// Loader names a loader registered with WithNamedLoader.
	Loader      string            `yaml:"loader"`
	Options     map[string]string `yaml:"options"`
	Attributes  map[string]string `yaml:"attributes"`
	Hidden      bool              `yaml:"hidden"`
}

// Operation returns the overlay for id; the zero value when absent.
func (o *Overlay) Operation(id string) OperationOverlay {
	if o == nil {
		return OperationOverlay{}
	}
	return o.Operations[id]
}

// Field returns the overlay for the dotted field path.
func (o OperationOverlay) Field(path string) FieldOverlay {
	return o.Fields[normalizeFieldPath(path)]
}

// LoadOverlay decodes a YAML overlay document. Unknown keys are rejected.
func LoadOverlay(data []byte) (*Overlay, error) {
	return decodeOverlay(data, "overlay")
}

// LoadOverlayFS merges every .yaml/.yml file in fsys into one overlay. An
// operation defined by two files is an error.
func LoadOverlayFS(fsys fs.FS) (*Overlay, error) {
	merged := &Overlay{Operations: make(map[string]OperationOverlay)}
	if fsys == nil {
		return merged, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemaform: read %s: %w", path, err)
		}
		overlay, err := decodeOverlay(data, path)
		if err != nil {
			return err
		}
		for id, op := range overlay.Operations {
			if _, exists := merged.Operations[id]; exists {
				return fmt.Errorf("schemaform: duplicate overlay for operation %q (file %s)", id, path)
			}
			merged.Operations[id] = op
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func decodeOverlay(data []byte, source string) (*Overlay, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("schemaform: overlay %s is empty", source)
	}

	var raw Overlay
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schemaform: parse %s: %w", source, err)
	}

	out := &Overlay{Operations: make(map[string]OperationOverlay, len(raw.Operations))}
	ids := make([]string, 0, len(raw.Operations))
	for id := range raw.Operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("schemaform: overlay %s defines an empty operation id", source)
		}
		op, err := normalizeOperationOverlay(raw.Operations[rawID], id, source)
		if err != nil {
			return nil, err
		}
		out.Operations[id] = op
	}
	return out, nil
}

func normalizeOperationOverlay(raw OperationOverlay, id, source string) (OperationOverlay, error) {
	op := OperationOverlay{
		Title:       strings.TrimSpace(raw.Title),
		SubmitLabel: strings.TrimSpace(raw.SubmitLabel),
		Fields:      make(map[string]FieldOverlay, len(raw.Fields)),
	}
	for _, path := range raw.Order {
		if normalized := normalizeFieldPath(path); normalized != "" {
			op.Order = append(op.Order, normalized)
		}
	}
	for key, field := range raw.Fields {
		normalized := normalizeFieldPath(key)
		if normalized == "" {
			return OperationOverlay{}, fmt.Errorf("schemaform: operation %q (%s) field key %q normalises to empty path", id, source, key)
		}
		if _, exists := op.Fields[normalized]; exists {
			return OperationOverlay{}, fmt.Errorf("schemaform: operation %q (%s) defines duplicate field path %q", id, source, normalized)
		}
		op.Fields[normalized] = field
	}
	return op, nil
}

// normalizeFieldPath turns "owner[email]" and "/owner/email" into
// "owner.email".
func normalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer("[", ".", "]", "", "/", ".")
	normalized := replacer.Replace(trimmed)
	for strings.Contains(normalized, "..") {
		normalized = strings.ReplaceAll(normalized, "..", ".")
	}
	return strings.Trim(normalized, ".")
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
