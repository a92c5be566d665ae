package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// SizeClass describes one cylinder size sold by the tenant, with its refill
// price used when seeding demo data and validating intake.
type SizeClass struct {
	Name  string `yaml:"name"`
	Kg    int    `yaml:"kg"`
	Price string `yaml:"price"`
}

type sizesFile struct {
	Sizes []SizeClass `yaml:"sizes"`
}

// LoadSizeCatalog reads the cylinder size catalog from a YAML file.
func LoadSizeCatalog(path string) ([]SizeClass, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	var f sizesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	for i, size := range f.Sizes {
		if size.Name == "" {
			return nil, fmt.Errorf("size at index %d missing name", i)
		}
		if size.Kg <= 0 {
			return nil, fmt.Errorf("size %q has non-positive weight", size.Name)
		}
		if _, err := decimal.NewFromString(size.Price); err != nil {
			return nil, fmt.Errorf("size %q has invalid price %q: %w", size.Name, size.Price, err)
		}
	}

	return f.Sizes, nil
}

// UnitPrice returns the catalog price for a size class.
func UnitPrice(sizes []SizeClass, name string) (decimal.Decimal, error) {
	for _, s := range sizes {
		if s.Name == name {
			return decimal.NewFromString(s.Price)
		}
	}
	return decimal.Zero, fmt.Errorf("unknown size class %q", name)
}
