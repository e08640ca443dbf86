package schemaform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned by Lookup when no operation matches.
var ErrOperationNotFound = errors.New("schemaform: operation not found")

// ErrNoRequestSchema is returned by Build for operations without an object
// request body.
var ErrNoRequestSchema = errors.New("schemaform: operation has no object request body")

// Operation is one OpenAPI operation with its request body schema.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// Schema is the request body schema, nil when the operation has none.
	Schema *Schema
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	validate     bool
	externalRefs bool
}

// WithValidation toggles document validation (enabled by default).
func WithValidation(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.validate = enabled
	}
}

// WithExternalRefs allows $refs that point outside the document.
func WithExternalRefs(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.externalRefs = enabled
	}
}

var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// Parse loads an OpenAPI 3 document (YAML or JSON) and returns its operations
// keyed by operationId. Operations without an id are keyed "method:path".
func Parse(ctx context.Context, raw []byte, options ...ParseOption) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("schemaform: document payload is empty")
	}

	cfg := parseConfig{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.externalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schemaform: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("schemaform: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("schemaform: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			collected := Operation{
				ID:          op.OperationID,
				Method:      method,
				Path:        path,
				Summary:     op.Summary,
				Description: op.Description,
				Schema:      requestSchema(op.RequestBody),
			}
			if collected.ID == "" {
				collected.ID = strings.ToLower(method) + ":" + path
			}
			operations[collected.ID] = collected
		}
	}
	if len(operations) == 0 {
		return nil, errors.New("schemaform: no operations extracted")
	}
	return operations, nil
}

// ParseFile reads path and parses it with Parse.
func ParseFile(ctx context.Context, path string, options ...ParseOption) (map[string]Operation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaform: read %s: %w", path, err)
	}
	return Parse(ctx, raw, options...)
}

// Lookup finds an operation by id or by "METHOD /path".
func Lookup(operations map[string]Operation, ref string) (Operation, error) {
	ref = strings.TrimSpace(ref)
	if op, ok := operations[ref]; ok {
		return op, nil
	}
	if method, path, ok := strings.Cut(ref, " "); ok {
		for _, op := range operations {
			if strings.EqualFold(op.Method, method) && op.Path == strings.TrimSpace(path) {
				return op, nil
			}
		}
	}
	return Operation{}, fmt.Errorf("%w: %q (available: %s)", ErrOperationNotFound, ref, strings.Join(OperationIDs(operations), ", "))
}

// OperationIDs returns the sorted operation ids.
func OperationIDs(operations map[string]Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func requestSchema(body *openapi3.RequestBodyRef) *Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema, make(map[*openapi3.Schema]struct{}))
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil {
			return convertSchema(mt.Schema, make(map[*openapi3.Schema]struct{}))
		}
	}
	return nil
}
