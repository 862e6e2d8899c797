package twsave

import "fmt"

// PartyType classifies a mobile party.
type PartyType uint8

const (
	PartyLord PartyType = iota
	PartyCaravan
	PartyGarrison
	PartyMilitia
	PartyBandit
	PartyVillager
	PartyQuest
	PartySpecial
)

func (t PartyType) String() string {
	switch t {
	case PartyLord:
		return "Lord"
	case PartyCaravan:
		return "Caravan"
	case PartyGarrison:
		return "Garrison"
	case PartyMilitia:
		return "Militia"
	case PartyBandit:
		return "Bandit"
	case PartyVillager:
		return "Villager"
	case PartyQuest:
		return "Quest"
	case PartySpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// PartyState is the party's current map behavior.
type PartyState uint8

const (
	PartyIdle PartyState = iota
	PartyMoving
	PartyBesieging
	PartyRaiding
	PartyInBattle
	PartyDisbanding
)

// Vec2 is a 2-D map position.
type Vec2 struct {
	X float64
	Y float64
}

// TroopStack is one entry of a party's troop or prisoner roster.
type TroopStack struct {
	TroopID string
	Name    string
	Count   int32
	Wounded int32
	Tier    int32
	IsHero  bool
	HeroID  EntityID // set when IsHero
}

// Clone returns a copy of the stack.
func (s TroopStack) Clone() TroopStack {
	return s
}

// Party is a mobile party on the campaign map.
type Party struct {
	dirtyState

	ID            EntityID
	PartyID       string
	Name          string
	Type          PartyType
	State         PartyState
	Gold          int64
	Food          float64
	Morale        float64
	SizeLimit     int32
	PrisonerLimit int32
	Position      Vec2

	LeaderID     EntityID
	ClanID       EntityID
	SettlementID EntityID

	Troops    []TroopStack
	Prisoners []TroopStack

	leader *Hero
	clan   *Clan
}

// Leader returns the resolved party leader, if any.
func (p *Party) Leader() *Hero { return p.leader }

// Clan returns the resolved owning clan, if any.
func (p *Party) Clan() *Clan { return p.clan }

// TotalTroops returns the summed count of the troop roster.
func (p *Party) TotalTroops() int32 {
	var total int32
	for _, s := range p.Troops {
		total += s.Count
	}
	return total
}

// SetGold sets the party's gold and marks the party dirty.
func (p *Party) SetGold(gold int64) {
	p.Gold = gold
	p.MarkDirty()
}

// SetMorale sets the party's morale. Values outside [0, 100] are rejected.
func (p *Party) SetMorale(morale float64) error {
	if morale < 0 || morale > 100 {
		return fmt.Errorf("morale %v out of range [0, 100]", morale)
	}
	p.Morale = morale
	p.MarkDirty()
	return nil
}

// SetStackCount updates the count of one troop stack, clamping the wounded
// count so that wounded <= count always holds. Negative counts are
// rejected.
func (p *Party) SetStackCount(i int, count int32) error {
	if i < 0 || i >= len(p.Troops) {
		return fmt.Errorf("troop stack index %d out of range", i)
	}
	if count < 0 {
		return fmt.Errorf("troop count %d out of range", count)
	}
	stack := &p.Troops[i]
	stack.Count = count
	if stack.Wounded > count {
		stack.Wounded = count
	}
	p.MarkDirty()
	return nil
}

// SetStackWounded updates the wounded count of one troop stack. The value
// must stay within [0, count].
func (p *Party) SetStackWounded(i int, wounded int32) error {
	if i < 0 || i >= len(p.Troops) {
		return fmt.Errorf("troop stack index %d out of range", i)
	}
	stack := &p.Troops[i]
	if wounded < 0 || wounded > stack.Count {
		return fmt.Errorf("wounded %d out of range [0, %d]", wounded, stack.Count)
	}
	stack.Wounded = wounded
	p.MarkDirty()
	return nil
}

// Clone returns a deep copy of the party. Resolver links and the dirty
// flag are not carried over.
func (p *Party) Clone() *Party {
	c := *p
	c.dirtyState = dirtyState{}
	c.leader, c.clan = nil, nil
	c.Troops = append([]TroopStack(nil), p.Troops...)
	c.Prisoners = append([]TroopStack(nil), p.Prisoners...)
	return &c
}
