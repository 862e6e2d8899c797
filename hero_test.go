package twsave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroEditAPI(t *testing.T) {
	h := &Hero{ID: NewEntityID(TypeHero, 1)}
	assert.False(t, h.IsDirty())

	h.SetGold(99999)
	assert.Equal(t, int64(99999), h.Gold)
	assert.True(t, h.IsDirty())

	h.ClearDirty()
	require.NoError(t, h.SetSkill(SkillBow, 300))
	assert.Equal(t, int32(300), h.Skills[SkillBow])
	assert.True(t, h.IsDirty())

	assert.Error(t, h.SetSkill(SkillBow, 301))
	assert.Error(t, h.SetSkill(SkillBow, -1))
	assert.Error(t, h.SetSkill(Skill(99), 10))
	assert.Equal(t, int32(300), h.Skills[SkillBow], "failed set must not modify")

	require.NoError(t, h.SetAttribute(AttrVigor, 10))
	assert.Equal(t, int32(10), h.Attributes.Vigor)
	assert.Error(t, h.SetAttribute(AttrVigor, 11))
	assert.Error(t, h.SetAttribute(AttrVigor, -1))

	require.NoError(t, h.SetHealth(0.5))
	assert.Error(t, h.SetHealth(1.01))
	assert.Error(t, h.SetHealth(-0.01))
}

func TestHeroPerkSet(t *testing.T) {
	h := &Hero{}
	assert.True(t, h.AddPerk(101))
	assert.True(t, h.AddPerk(102))
	assert.False(t, h.AddPerk(101), "duplicate perk must be rejected")
	assert.Equal(t, []uint32{101, 102}, h.Perks)

	assert.True(t, h.RemovePerk(101))
	assert.False(t, h.RemovePerk(101))
	assert.Equal(t, []uint32{102}, h.Perks)
}

func TestHeroClone(t *testing.T) {
	h := &Hero{
		ID:    NewEntityID(TypeHero, 7),
		Name:  "Derthert",
		Perks: []uint32{1, 2, 3},
	}
	h.MarkDirty()

	c := h.Clone()
	assert.Equal(t, h.ID, c.ID)
	assert.Equal(t, h.Name, c.Name)
	assert.False(t, c.IsDirty(), "clone starts clean")

	c.Perks[0] = 99
	assert.Equal(t, uint32(1), h.Perks[0], "clone must not share perk storage")
}

func TestShipUpgradeSet(t *testing.T) {
	s := &Ship{}
	assert.True(t, s.AddUpgrade(5))
	assert.False(t, s.AddUpgrade(5))
	assert.Equal(t, []uint32{5}, s.Upgrades)

	assert.Error(t, s.SetCrew(-1))
	require.NoError(t, s.SetCrew(40))
	assert.Equal(t, int32(40), s.CrewCount)
}

func TestEntityID(t *testing.T) {
	id := NewEntityID(TypeFleet, 42)
	assert.Equal(t, TypeFleet, id.Type())
	assert.Equal(t, uint32(42), id.Unique())
	assert.False(t, id.IsZero())
	assert.Equal(t, "100-42", id.String())

	var zero EntityID
	assert.True(t, zero.IsZero())
	assert.Equal(t, "none", zero.String())
}
