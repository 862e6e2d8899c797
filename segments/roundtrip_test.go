package segments

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

// ignoreLinks skips the unexported resolver links and dirty flags when
// comparing object graphs.
var ignoreLinks = cmpopts.IgnoreUnexported(
	twsave.Hero{}, twsave.Party{}, twsave.Settlement{}, twsave.Faction{},
	twsave.Clan{}, twsave.Kingdom{}, twsave.Fleet{}, twsave.Ship{},
)

func fullSave() *twsave.SaveFile {
	save := &twsave.SaveFile{}
	save.SetTime(3*twsave.TicksPerYear + 17*twsave.TicksPerDay)

	hero := &twsave.Hero{
		ID:           twsave.NewEntityID(twsave.TypeHero, 1),
		HeroID:       "main_hero",
		Name:         "Ragnar",
		FirstName:    "Ragnar",
		HasFirstName: true,
		Gender:       twsave.Male,
		Age:          32.5,
		Level:        14,
		Experience:   128000,
		AttributePts: 2,
		FocusPts:     5,
		Gold:         1000,
		Health:       0.85,
		State:        twsave.HeroActive,
		Attributes:   twsave.Attributes{Vigor: 5, Control: 4, Endurance: 6, Cunning: 3, Social: 2, Intelligence: 7},
		HasNaval:     true,
		Naval:        twsave.NavalSkills{Seamanship: 40, Navigation: 25, Boarding: 60},
		Perks:        []uint32{101, 102, 340},
		ClanID:       twsave.NewEntityID(twsave.TypeClan, 1),
		FleetID:      twsave.NewEntityID(twsave.TypeFleet, 1),
	}
	hero.Skills[twsave.SkillBow] = 120
	hero.Skills[twsave.SkillTrade] = 75

	save.Heroes = []*twsave.Hero{hero}

	save.Parties = []*twsave.Party{{
		ID:            twsave.NewEntityID(twsave.TypeParty, 1),
		PartyID:       "player_party",
		Name:          "Ragnar's Party",
		Type:          twsave.PartyLord,
		State:         twsave.PartyMoving,
		Gold:          4000,
		Food:          82.5,
		Morale:        75,
		SizeLimit:     60,
		PrisonerLimit: 15,
		Position:      twsave.Vec2{X: 412.25, Y: 280.75},
		LeaderID:      hero.ID,
		ClanID:        hero.ClanID,
		Troops: []twsave.TroopStack{
			{TroopID: "imperial_recruit", Name: "Imperial Recruit", Count: 20, Wounded: 3, Tier: 1},
			{TroopID: "main_hero", Name: "Ragnar", Count: 1, Tier: 6, IsHero: true, HeroID: hero.ID},
		},
		Prisoners: []twsave.TroopStack{
			{TroopID: "looter", Name: "Looter", Count: 4, Tier: 1},
		},
	}}

	save.Settlements = []*twsave.Settlement{{
		ID:           twsave.NewEntityID(twsave.TypeSettlement, 1),
		SettlementID: "town_EN1",
		Name:         "Epicrotea",
		Type:         twsave.SettlementTown,
		Position:     twsave.Vec2{X: 120, Y: 340},
		OwnerClanID:  twsave.NewEntityID(twsave.TypeClan, 1),
		Prosperity:   5300.5,
		Loyalty:      62,
		Security:     71,
		FoodStocks:   180,
		Militia:      240,
		Garrison:     320,
		WallLevel:    2,
	}}

	save.Factions = []*twsave.Faction{{
		ID:        twsave.NewEntityID(twsave.TypeFaction, 1),
		FactionID: "forest_bandits",
		Name:      "Forest Bandits",
		Type:      twsave.FactionOutlaw,
		Tier:      1,
		Color1:    0xFF332211,
		Color2:    0xFF665544,
	}}

	save.Clans = []*twsave.Clan{{
		ID:           twsave.NewEntityID(twsave.TypeClan, 1),
		ClanID:       "player_clan",
		Name:         "Skolderbrotva",
		Tier:         3,
		Renown:       890,
		Influence:    120.5,
		Gold:         60000,
		IsPlayerClan: true,
		KingdomID:    twsave.NewEntityID(twsave.TypeKingdom, 1),
		LeaderID:     hero.ID,
		Color1:       0xFF112233,
		Color2:       0xFF445566,
	}}

	save.Kingdoms = []*twsave.Kingdom{{
		ID:           twsave.NewEntityID(twsave.TypeKingdom, 1),
		KingdomID:    "sturgia",
		Name:         "Sturgia",
		Tier:         6,
		Renown:       5000,
		Influence:    900,
		Gold:         250000,
		RulingClanID: twsave.NewEntityID(twsave.TypeClan, 1),
		Color1:       0xFF0A3153,
		Color2:       0xFFD8E4EE,
	}}

	flagship := &twsave.Ship{
		ID:          twsave.NewEntityID(twsave.TypeShip, 1),
		ShipID:      "longship_raider",
		Name:        "Seawolf",
		Type:        twsave.ShipLongship,
		HullPoints:  450,
		CrewCount:   40,
		CrewQuality: 3,
		CrewMorale:  80,
		Upgrades:    []uint32{2, 7},
		Cargo: []twsave.CargoItem{
			{ItemID: "grain", Quantity: 12},
			{ItemID: "furs", Quantity: 3},
		},
		FleetID: twsave.NewEntityID(twsave.TypeFleet, 1),
	}
	save.Ships = []*twsave.Ship{flagship}

	save.Fleets = []*twsave.Fleet{{
		ID:         twsave.NewEntityID(twsave.TypeFleet, 1),
		FleetID:    "player_fleet",
		Name:       "Northern Fleet",
		AdmiralID:  hero.ID,
		ClanID:     twsave.NewEntityID(twsave.TypeClan, 1),
		FlagshipID: flagship.ID,
		ShipIDs:    []twsave.EntityID{flagship.ID},
		Position:   twsave.NavalPosition{X: 90.5, Y: 410.25, Heading: 1.5},
		State:      twsave.FleetSailing,
		Formation:  2,
		Morale:     77,
		Gold:       800,
	}}

	return save
}

func TestPayloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	original := fullSave()

	payload, err := EncodePayload(ctx, original)
	require.NoError(t, err)

	decoded := &twsave.SaveFile{}
	require.NoError(t, DecodePayload(ctx, payload, decoded, false))

	assert.True(t, decoded.HasTime)
	assert.Equal(t, original.Time, decoded.Time)

	for name, diff := range map[string]string{
		"heroes":      cmp.Diff(original.Heroes, decoded.Heroes, ignoreLinks),
		"parties":     cmp.Diff(original.Parties, decoded.Parties, ignoreLinks),
		"settlements": cmp.Diff(original.Settlements, decoded.Settlements, ignoreLinks),
		"factions":    cmp.Diff(original.Factions, decoded.Factions, ignoreLinks),
		"clans":       cmp.Diff(original.Clans, decoded.Clans, ignoreLinks),
		"kingdoms":    cmp.Diff(original.Kingdoms, decoded.Kingdoms, ignoreLinks),
		"fleets":      cmp.Diff(original.Fleets, decoded.Fleets, ignoreLinks),
		"ships":       cmp.Diff(original.Ships, decoded.Ships, ignoreLinks),
	} {
		assert.Empty(t, diff, "%s differ after round trip", name)
	}

	// a second pass must be stable
	payload2, err := EncodePayload(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, payload, payload2)
}

func TestUnknownSegmentPreserved(t *testing.T) {
	ctx := context.Background()

	w := encoding.NewWriter()
	w.Uint16(0xABCD)
	w.Uint32(4)
	w.Raw([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	save := &twsave.SaveFile{}
	require.NoError(t, DecodePayload(ctx, w.Bytes(), save, false))

	require.Len(t, save.UnknownSegments, 1)
	assert.Equal(t, uint16(0xABCD), save.UnknownSegments[0].ID)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, save.UnknownSegments[0].Data)
	assert.Equal(t, 0, save.UnknownSegments[0].Offset)

	// re-emission reproduces the segment bytes unchanged
	out, err := EncodePayload(ctx, save)
	require.NoError(t, err)
	assert.Equal(t, w.Bytes(), out)
}

func TestUnknownSegmentOrderKept(t *testing.T) {
	ctx := context.Background()

	w := encoding.NewWriter()
	for i, id := range []uint16{0x7001, 0x7002, 0x7003} {
		w.Uint16(id)
		w.Uint32(1)
		w.Uint8(uint8(i))
	}

	save := &twsave.SaveFile{}
	require.NoError(t, DecodePayload(ctx, w.Bytes(), save, false))
	require.Len(t, save.UnknownSegments, 3)

	out, err := EncodePayload(ctx, save)
	require.NoError(t, err)
	assert.Equal(t, w.Bytes(), out, "relative order of unknown segments must survive")
}

func TestQuestSegmentTravelsRaw(t *testing.T) {
	ctx := context.Background()

	w := encoding.NewWriter()
	w.Uint16(QuestsSegment)
	w.Uint32(3)
	w.Raw([]byte{0x01, 0x02, 0x03})

	save := &twsave.SaveFile{}
	require.NoError(t, DecodePayload(ctx, w.Bytes(), save, false))
	require.Len(t, save.UnknownSegments, 1)
	assert.Equal(t, QuestsSegment, save.UnknownSegments[0].ID)
}

func TestDecodeStrictFailsOnBadSegment(t *testing.T) {
	ctx := context.Background()

	w := encoding.NewWriter()
	w.Uint16(HeroesSegment)
	w.Uint32(4)
	w.Int32(1) // one hero announced, no hero data

	err := DecodePayload(ctx, w.Bytes(), &twsave.SaveFile{}, false)
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, HeroesSegment, decErr.ID)
	assert.ErrorIs(t, err, ErrTruncatedSegment)
}

func TestDecodePermissiveSkipsBadSegment(t *testing.T) {
	ctx := context.Background()

	w := encoding.NewWriter()
	w.Uint16(TimeSegment)
	w.Uint32(8)
	w.Int64(12345)

	w.Uint16(HeroesSegment)
	w.Uint32(4)
	w.Int32(1) // truncated hero list

	w.Uint16(ClansSegment)
	pos := w.Reserve32()
	w.Int32(0)
	w.BackfillLength(pos)

	save := &twsave.SaveFile{}
	require.NoError(t, DecodePayload(ctx, w.Bytes(), save, true))

	assert.True(t, save.HasTime)
	assert.Equal(t, int64(12345), save.Time.Ticks)
	assert.Empty(t, save.Heroes, "bad segment is skipped, not partially decoded")
	assert.Empty(t, save.Clans)
}

func TestDecodeRejectsOversizedLength(t *testing.T) {
	w := encoding.NewWriter()
	w.Uint16(TimeSegment)
	w.Uint32(1000) // content longer than the payload

	err := DecodePayload(context.Background(), w.Bytes(), &twsave.SaveFile{}, false)
	assert.ErrorIs(t, err, ErrTruncatedSegment)
}

func TestDecodeIgnoresTrailingShortBytes(t *testing.T) {
	w := encoding.NewWriter()
	w.Uint16(TimeSegment)
	w.Uint32(8)
	w.Int64(7)
	w.Raw([]byte{0x01, 0x02, 0x03}) // fewer than a segment header

	save := &twsave.SaveFile{}
	require.NoError(t, DecodePayload(context.Background(), w.Bytes(), save, false))
	assert.Equal(t, int64(7), save.Time.Ticks)
}
