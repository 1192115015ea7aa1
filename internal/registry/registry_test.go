package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innerparts/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	reg := Default()
	assert.Equal(t, 18, reg.Len())

	counts := map[model.Archetype]int{}
	for _, rec := range defaultCatalog {
		counts[rec.Archetype]++
		assert.NotEmpty(t, rec.DisplayName)
		assert.NotEmpty(t, rec.Description)
		assert.NotEmpty(t, rec.GLBFileName)
	}
	assert.Equal(t, 7, counts[model.ArchetypeManager])
	assert.Equal(t, 3, counts[model.ArchetypeFirefighter])
	assert.Equal(t, 8, counts[model.ArchetypeExile])
}

func TestLookupKnownCharacter(t *testing.T) {
	reg := Default()

	rec := reg.Lookup("People Pleaser")
	assert.Equal(t, "The People Pleaser", rec.DisplayName)
	assert.Equal(t, model.ArchetypeManager, rec.Archetype)
	assert.Equal(t, "people_pleaser.glb", rec.GLBFileName)

	rec = reg.Lookup("Overeater/Binger")
	assert.Equal(t, model.ArchetypeFirefighter, rec.Archetype)
	assert.Equal(t, "overeater-binger.glb", rec.GLBFileName)
}

func TestLookupUnknownCharacterFallbacks(t *testing.T) {
	reg := Default()

	rec := reg.Lookup("Mystery Part")
	assert.Equal(t, "Mystery Part", rec.CharacterName)
	assert.Equal(t, "Mystery Part", rec.DisplayName)
	assert.Equal(t, model.ArchetypeUnknown, rec.Archetype)
	assert.Equal(t, GenericDescription, rec.Description)
	assert.Equal(t, FallbackGLBFile, rec.GLBFileName)
}
