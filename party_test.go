package twsave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyStackEdits(t *testing.T) {
	p := &Party{
		ID: NewEntityID(TypeParty, 1),
		Troops: []TroopStack{
			{TroopID: "imperial_recruit", Count: 20, Wounded: 5},
		},
	}

	// shrinking the stack clamps the wounded count
	require.NoError(t, p.SetStackCount(0, 3))
	assert.Equal(t, int32(3), p.Troops[0].Count)
	assert.Equal(t, int32(3), p.Troops[0].Wounded)
	assert.True(t, p.IsDirty())

	assert.Error(t, p.SetStackCount(0, -1))
	assert.Error(t, p.SetStackCount(5, 1))

	require.NoError(t, p.SetStackWounded(0, 0))
	assert.Error(t, p.SetStackWounded(0, 4), "wounded may not exceed count")
	assert.Error(t, p.SetStackWounded(0, -1))
}

func TestPartyMoraleRange(t *testing.T) {
	p := &Party{}
	require.NoError(t, p.SetMorale(100))
	assert.Error(t, p.SetMorale(100.5))
	assert.Error(t, p.SetMorale(-1))
}

func TestPartyClone(t *testing.T) {
	p := &Party{
		ID:     NewEntityID(TypeParty, 2),
		Troops: []TroopStack{{TroopID: "looter", Count: 10}},
	}
	c := p.Clone()
	c.Troops[0].Count = 99
	assert.Equal(t, int32(10), p.Troops[0].Count, "clone must not share stacks")
}

func TestPartyTotalTroops(t *testing.T) {
	p := &Party{
		Troops: []TroopStack{{Count: 10}, {Count: 7}},
	}
	assert.Equal(t, int32(17), p.TotalTroops())
}
