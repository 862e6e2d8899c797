package twsave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func navalSave() *SaveFile {
	clan := &Clan{ID: NewEntityID(TypeClan, 1), Name: "Osrickin"}
	admiral := &Hero{ID: NewEntityID(TypeHero, 1), Name: "Olek", ClanID: clan.ID}
	flagship := &Ship{ID: NewEntityID(TypeShip, 1), Name: "Seawolf"}
	escort := &Ship{ID: NewEntityID(TypeShip, 2), Name: "Gull"}
	fleet := &Fleet{
		ID:         NewEntityID(TypeFleet, 1),
		AdmiralID:  admiral.ID,
		ClanID:     clan.ID,
		FlagshipID: flagship.ID,
		ShipIDs:    []EntityID{flagship.ID, escort.ID},
	}
	flagship.FleetID = fleet.ID
	escort.FleetID = fleet.ID
	admiral.FleetID = fleet.ID

	return &SaveFile{
		Heroes: []*Hero{admiral},
		Clans:  []*Clan{clan},
		Fleets: []*Fleet{fleet},
		Ships:  []*Ship{flagship, escort},
	}
}

func TestResolveLinks(t *testing.T) {
	save := navalSave()
	save.Resolve()

	hero := save.Heroes[0]
	fleet := save.Fleets[0]

	require.NotNil(t, hero.Clan())
	assert.Equal(t, "Osrickin", hero.Clan().Name)
	require.NotNil(t, hero.Fleet())
	assert.Same(t, fleet, hero.Fleet())

	require.NotNil(t, fleet.Admiral())
	assert.Same(t, hero, fleet.Admiral())
	require.NotNil(t, fleet.Flagship())
	assert.Equal(t, "Seawolf", fleet.Flagship().Name)
	require.Len(t, fleet.Ships(), 2)
	assert.Same(t, fleet, fleet.Ships()[1].Fleet())

	assert.Empty(t, save.Dangling())
	assert.Same(t, hero, save.HeroByID(hero.ID))
	assert.Same(t, fleet, save.FleetByID(fleet.ID))
}

func TestResolveDangling(t *testing.T) {
	save := navalSave()
	// point the admiral at a clan that does not exist
	save.Heroes[0].ClanID = NewEntityID(TypeClan, 99)
	save.Resolve()

	assert.Nil(t, save.Heroes[0].Clan())
	require.Len(t, save.Dangling(), 1)
	d := save.Dangling()[0]
	assert.Equal(t, "ClanID", d.Field)
	assert.Equal(t, NewEntityID(TypeClan, 99), d.To)
}

func TestResolveIdempotent(t *testing.T) {
	save := navalSave()
	save.Resolve()
	save.Resolve()
	assert.Len(t, save.Fleets[0].Ships(), 2, "re-resolving must not duplicate ship links")
	assert.Empty(t, save.Dangling())
}

func TestPartyLeaderLink(t *testing.T) {
	leader := &Hero{ID: NewEntityID(TypeHero, 3)}
	party := &Party{ID: NewEntityID(TypeParty, 1), LeaderID: leader.ID}
	save := &SaveFile{Heroes: []*Hero{leader}, Parties: []*Party{party}}
	save.Resolve()

	assert.Same(t, leader, party.Leader())
}
