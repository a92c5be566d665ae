package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeSizesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sizes.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write sizes file: %v", err)
	}
	return path
}

func TestLoadSizeCatalog(t *testing.T) {
	path := writeSizesFile(t, `sizes:
  - name: Small
    kg: 11
    price: "2800"
  - name: Large
    kg: 45
    price: "11200"
`)

	sizes, err := LoadSizeCatalog(path)
	if err != nil {
		t.Fatalf("LoadSizeCatalog failed: %v", err)
	}
	if len(sizes) != 2 {
		t.Fatalf("Expected 2 sizes, got %d", len(sizes))
	}
	if sizes[0].Name != "Small" || sizes[0].Kg != 11 {
		t.Errorf("Unexpected first size: %+v", sizes[0])
	}

	price, err := UnitPrice(sizes, "Large")
	if err != nil {
		t.Fatalf("UnitPrice failed: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(11200)) {
		t.Errorf("Expected price 11200, got %s", price)
	}

	if _, err := UnitPrice(sizes, "Gigantic"); err == nil {
		t.Error("Expected an error for an unknown size class")
	}
}

func TestLoadSizeCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name": `sizes:
  - kg: 11
    price: "2800"
`,
		"zero weight": `sizes:
  - name: Small
    kg: 0
    price: "2800"
`,
		"bad price": `sizes:
  - name: Small
    kg: 11
    price: "cheap"
`,
	}

	for label, content := range cases {
		path := writeSizesFile(t, content)
		if _, err := LoadSizeCatalog(path); err == nil {
			t.Errorf("Expected %s to be rejected", label)
		}
	}
}
