package twsave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingKinds(findings []Finding) []string {
	kinds := make([]string, len(findings))
	for i, f := range findings {
		kinds[i] = f.Kind
	}
	return kinds
}

func TestValidateCleanSave(t *testing.T) {
	save := navalSave()
	save.Header.GameVersion = "v1.2.10"
	save.Modules = []Module{{ID: "Native", Version: "v1.2.10", Official: true}}

	report := Validate(save)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.False(t, report.HasErrors())
}

func TestValidateRanges(t *testing.T) {
	hero := &Hero{ID: NewEntityID(TypeHero, 1), Health: 1.5}
	hero.Skills[SkillBow] = 400
	hero.Attributes.Vigor = 11
	hero.Perks = []uint32{9, 9}

	save := &SaveFile{
		Header: Header{GameVersion: "v1.0.0"},
		Heroes: []*Hero{hero},
	}
	report := Validate(save)

	kinds := findingKinds(report.Errors)
	assert.Contains(t, kinds, FindingOutOfRange)
	assert.Contains(t, findingKinds(report.Warnings), FindingDuplicatePerk)
	// health, skill, attribute
	assert.Len(t, report.Errors, 3)
}

func TestValidateWoundedExceedsCount(t *testing.T) {
	party := &Party{
		ID:     NewEntityID(TypeParty, 1),
		Morale: 50,
		Troops: []TroopStack{{TroopID: "recruit", Count: 5, Wounded: 9}},
	}
	save := &SaveFile{Header: Header{GameVersion: "x"}, Parties: []*Party{party}}
	report := Validate(save)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, FindingWoundedExceeds, report.Errors[0].Kind)
	assert.Contains(t, report.Errors[0].Entities, party.ID)
}

func TestValidateCrossEntity(t *testing.T) {
	save := navalSave()
	save.Header.GameVersion = "v1"
	fleet := save.Fleets[0]

	// flagship id outside the fleet's ship list
	fleet.FlagshipID = NewEntityID(TypeShip, 77)
	// second ship claims a different fleet
	save.Ships[1].FleetID = NewEntityID(TypeFleet, 8)
	save.Resolve()

	report := Validate(save)
	kinds := findingKinds(report.Errors)
	assert.Contains(t, kinds, FindingFlagshipMissing)
	assert.Contains(t, kinds, FindingShipFleetMismatch)
}

func TestValidateDeadLeader(t *testing.T) {
	leader := &Hero{ID: NewEntityID(TypeHero, 1), State: HeroDead}
	party := &Party{ID: NewEntityID(TypeParty, 1), Morale: 10, LeaderID: leader.ID}
	save := &SaveFile{
		Header:  Header{GameVersion: "v1"},
		Heroes:  []*Hero{leader},
		Parties: []*Party{party},
	}
	report := Validate(save)
	assert.Contains(t, findingKinds(report.Warnings), FindingDeadLeader)
}

func TestValidateHeaderFindings(t *testing.T) {
	save := &SaveFile{}
	report := Validate(save)
	assert.Contains(t, findingKinds(report.Warnings), FindingEmptyGameVersion)
	assert.Contains(t, findingKinds(report.Infos), FindingEmptyModuleList)
	assert.False(t, report.HasErrors())
}

func TestValidateDanglingReported(t *testing.T) {
	hero := &Hero{ID: NewEntityID(TypeHero, 1), ClanID: NewEntityID(TypeClan, 5)}
	save := &SaveFile{Header: Header{GameVersion: "v1"}, Heroes: []*Hero{hero}}
	report := Validate(save)
	assert.Contains(t, findingKinds(report.Warnings), FindingDanglingReference)
}
