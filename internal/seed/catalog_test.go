package seed

import (
	"os"
	"path/filepath"
	"testing"

	"musclemania/gym-catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	var names []string
	known := map[string]bool{}
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
		known[cat.Name] = true
		assert.NotEmpty(t, cat.ImageURL, "category %s", cat.Name)
	}
	assert.Equal(t, []string{"Chest", "Back", "Legs", "Shoulders", "Arms", "Core", "Full Body", "Cardio"}, names)

	require.NotEmpty(t, c.Equipment)
	for _, eq := range c.Equipment {
		assert.True(t, known[eq.CategoryName], "equipment %q references unknown category %q", eq.Name, eq.CategoryName)
		assert.True(t, eq.Type.Valid())
		if eq.CategoryName == "Cardio" {
			assert.Equal(t, domain.EquipmentCardio, eq.Type, eq.Name)
		}
	}
}

func TestParseCatalog(t *testing.T) {
	t.Run("defaults missing type to strength", func(t *testing.T) {
		c, err := ParseCatalog([]byte(`
categories:
  - name: Chest
equipment:
  - name: Pec Deck
    categoryName: Chest
`))
		require.NoError(t, err)
		assert.Equal(t, domain.EquipmentStrength, c.Equipment[0].Type)
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`equipment: []`))
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
categories:
  - name: Chest
equipment:
  - name: Pec Deck
    type: yoga
    categoryName: Chest
`))
		assert.ErrorContains(t, err, "unknown type")
	})

	t.Run("rejects duplicate category names", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`
categories:
  - name: Chest
  - name: Chest
equipment:
  - name: Pec Deck
    categoryName: Chest
`))
		assert.ErrorContains(t, err, `duplicate category "Chest"`)
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		_, err := ParseCatalog([]byte("categories: ["))
		assert.Error(t, err)
	})
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: Legs\n"), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, c.Categories, 1)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	c, err = LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, c.Categories, 8)
}
