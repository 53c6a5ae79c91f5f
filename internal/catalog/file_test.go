package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akagifreeez/trade-values/internal/models"
)

const jsonDoc = `[
  {"id": 1, "name": "ak47 default", "type": "normal", "category": "rifles", "trend": "stable",
   "baseValue": "1.2k", "baseValueNum": 1200, "raresNum": null},
  {"id": 2, "name": "karambit", "type": "st", "category": "knives", "trend": "rising"}
]`

const yamlDoc = `
- id: 1
  name: ak47 default
  type: normal
  category: rifles
  trend: stable
  baseValue: 1.2k
  baseValueNum: 1200
  raresNum: null
- id: 2
  name: karambit
  type: st
  category: knives
  trend: rising
`

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		raw     string
		format  Format
		wantErr bool
	}{
		"json":             {raw: jsonDoc, format: FormatJSON},
		"yaml":             {raw: yamlDoc, format: FormatYAML},
		"unknown trend":    {raw: `[{"id":1,"name":"a","type":"normal","category":"c","trend":"sideways"}]`, format: FormatJSON, wantErr: true},
		"missing id":       {raw: `[{"name":"a","type":"normal","category":"c","trend":"stable"}]`, format: FormatJSON, wantErr: true},
		"string value num": {raw: `[{"id":1,"name":"a","type":"normal","category":"c","trend":"stable","baseValueNum":"12"}]`, format: FormatJSON, wantErr: true},
		"not an array":     {raw: `{"id":1}`, format: FormatJSON, wantErr: true},
		"malformed json":   {raw: `[{`, format: FormatJSON, wantErr: true},
		"malformed yaml":   {raw: "- id: [1", format: FormatYAML, wantErr: true},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			items, err := Decode([]byte(tc.raw), tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d items", len(items))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("got %d items, want 2", len(items))
			}
			if items[0].Trend != models.TrendStable || items[1].Type != models.TypeST {
				t.Errorf("unexpected items: %+v", items)
			}
			if !items[0].BaseValueNum.Valid || items[0].BaseValueNum.Float64 != 1200 {
				t.Errorf("baseValueNum = %v, want 1200", items[0].BaseValueNum)
			}
			if items[0].RaresNum.Valid || items[1].BaseValueNum.Valid {
				t.Errorf("null and missing numbers should decode as null")
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	cases := map[string]Format{
		"items.json": FormatJSON,
		"items.yaml": FormatYAML,
		"items.YML":  FormatYAML,
		"items":      FormatJSON,
	}
	for path, want := range cases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "items.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_sampleData(t *testing.T) {
	t.Parallel()

	c, err := LoadFile(filepath.Join("..", "..", "data", "items.json"))
	if err != nil {
		t.Fatalf("sample catalog should load: %v", err)
	}
	if c.Len() == 0 {
		t.Error("sample catalog is empty")
	}
}
