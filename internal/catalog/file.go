package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/akagifreeez/trade-values/internal/models"
)

//go:embed item.schema.json
var itemSchemaJSON string

var itemSchema = jsonschema.MustCompileString("item.schema.json", itemSchemaJSON)

// Format is the encoding of a catalog document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadFile reads and validates a JSON or YAML catalog document
func LoadFile(path string) (*Catalog, error) {
	items, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(items)
}

// ReadFile reads and validates the items of a catalog document without indexing them
func ReadFile(path string) ([]models.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	items, err := Decode(raw, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	log.Info().Str("path", path).Int("count", len(items)).Msg("Loaded catalog document")
	return items, nil
}

// Decode parses a catalog document and validates it against the item schema
func Decode(raw []byte, format Format) ([]models.Item, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert yaml: %w", err)
		}
		raw = converted
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	if err := itemSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}
