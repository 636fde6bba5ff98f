package index

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaVersion is the index document format this implementation understands.
// Documents carrying any other value cannot be merged.
const SchemaVersion = 1

// ErrSchemaVersion is returned when an existing index document declares a
// schema version this implementation does not understand.
var ErrSchemaVersion = errors.New("unsupported index schema version")

//go:embed schema/index.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// Entry is one add-on's metadata declaration augmented with the
// download_url and source fields.
type Entry = map[string]interface{}

// Document is the persisted index format.
type Document struct {
	SchemaVersion int              `json:"schema-version"`
	Addons        map[string]Entry `json:"addons"`
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("index.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("index.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Read loads an existing index document and returns its addons mapping.
// Unreadable files, malformed JSON, a missing or mismatched schema-version,
// and structural schema violations are all returned as errors; callers treat
// them as fatal so a stale or foreign index is never silently overwritten
// with a partial merge.
func Read(path string) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", path, err)
	}

	if err := checkSchemaVersion(instance); err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading index schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("index %s does not match the index schema: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding index %s: %w", path, err)
	}
	if doc.Addons == nil {
		doc.Addons = map[string]Entry{}
	}
	return doc.Addons, nil
}

// checkSchemaVersion verifies the schema-version field of a decoded document
// against SchemaVersion. Missing and non-integer values are mismatches too.
func checkSchemaVersion(instance interface{}) error {
	obj, ok := instance.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: document is not a JSON object", ErrSchemaVersion)
	}
	raw, ok := obj["schema-version"]
	if !ok {
		return fmt.Errorf("%w: schema-version missing, want %d", ErrSchemaVersion, SchemaVersion)
	}
	num, ok := raw.(json.Number)
	if !ok {
		return fmt.Errorf("%w: got %v, want %d", ErrSchemaVersion, raw, SchemaVersion)
	}
	version, err := num.Int64()
	if err != nil || version != SchemaVersion {
		return fmt.Errorf("%w: got %v, want %d", ErrSchemaVersion, num, SchemaVersion)
	}
	return nil
}

// Merge overlays fresh entries onto existing ones. A fresh entry replaces an
// existing entry with the same ID wholesale; existing IDs absent from the
// fresh scan are preserved unchanged. Neither input is modified.
func Merge(existing, fresh map[string]Entry) map[string]Entry {
	merged := make(map[string]Entry, len(existing)+len(fresh))
	for id, entry := range existing {
		merged[id] = entry
	}
	for id, entry := range fresh {
		merged[id] = entry
	}
	return merged
}

// Write serializes the addons mapping as an index document at path,
// overwriting any previous file. Output is UTF-8, four-space indented, with
// object keys in sorted order.
func Write(path string, addons map[string]Entry) error {
	if addons == nil {
		addons = map[string]Entry{}
	}
	doc := Document{SchemaVersion: SchemaVersion, Addons: addons}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encoding index: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("writing index file %s: %w", path, err)
	}
	return nil
}
