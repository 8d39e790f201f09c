package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"musclemania/gym-catalog/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CategoryDef is one category of the baseline catalog.
type CategoryDef struct {
	Name     string `yaml:"name"`
	ImageURL string `yaml:"imageUrl"`
}

// EquipmentDef is one machine of the baseline catalog. CategoryName must
// match a CategoryDef.Name exactly.
type EquipmentDef struct {
	Name         string               `yaml:"name"`
	ImageURL     string               `yaml:"imageUrl"`
	Type         domain.EquipmentType `yaml:"type"`
	CategoryName string               `yaml:"categoryName"`
}

// Catalog is the fixed data the seeder writes.
type Catalog struct {
	Categories []CategoryDef  `yaml:"categories"`
	Equipment  []EquipmentDef `yaml:"equipment"`
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a catalog file, or the embedded one when path is empty.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and checks catalog YAML. Equipment naming an unknown
// category is allowed here; the seeder skips it with a warning.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse seed catalog: %w", err)
	}
	if len(c.Categories) == 0 {
		return Catalog{}, errors.New("seed catalog has no categories")
	}
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			return Catalog{}, fmt.Errorf("seed catalog: category %d has no name", i)
		}
		// Equipment links by name, so names must be unique.
		if seen[cat.Name] {
			return Catalog{}, fmt.Errorf("seed catalog: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
	}
	for i, eq := range c.Equipment {
		if eq.Name == "" {
			return Catalog{}, fmt.Errorf("seed catalog: equipment %d has no name", i)
		}
		if eq.Type == "" {
			c.Equipment[i].Type = domain.EquipmentStrength
		} else if !eq.Type.Valid() {
			return Catalog{}, fmt.Errorf("seed catalog: equipment %q has unknown type %q", eq.Name, eq.Type)
		}
	}
	return c, nil
}
