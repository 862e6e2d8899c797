package twsave

// SettlementType classifies a settlement.
type SettlementType uint8

const (
	SettlementTown SettlementType = iota
	SettlementCastle
	SettlementVillage
	SettlementHideout
)

func (t SettlementType) String() string {
	switch t {
	case SettlementTown:
		return "Town"
	case SettlementCastle:
		return "Castle"
	case SettlementVillage:
		return "Village"
	case SettlementHideout:
		return "Hideout"
	default:
		return "Unknown"
	}
}

// Settlement is a fixed location on the campaign map.
type Settlement struct {
	dirtyState

	ID           EntityID
	SettlementID string
	Name         string
	Type         SettlementType
	Position     Vec2
	OwnerClanID  EntityID

	Prosperity float64
	Loyalty    float64
	Security   float64
	FoodStocks float64
	Militia    float64
	Garrison   int32
	WallLevel  int32
}

// SetProsperity sets the settlement's prosperity and marks it dirty.
func (s *Settlement) SetProsperity(v float64) {
	s.Prosperity = v
	s.MarkDirty()
}

// SetGarrison sets the garrison size and marks the settlement dirty.
func (s *Settlement) SetGarrison(n int32) {
	s.Garrison = n
	s.MarkDirty()
}

// Clone returns a copy of the settlement without dirty state.
func (s *Settlement) Clone() *Settlement {
	c := *s
	c.dirtyState = dirtyState{}
	return &c
}
