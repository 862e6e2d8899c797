package twsave

import "fmt"

// FleetState is the fleet's current naval behavior.
type FleetState uint8

const (
	FleetDocked FleetState = iota
	FleetSailing
	FleetAnchored
	FleetInCombat
	FleetBlockading
	FleetFleeing
	FleetDisabled
)

func (s FleetState) String() string {
	switch s {
	case FleetDocked:
		return "Docked"
	case FleetSailing:
		return "Sailing"
	case FleetAnchored:
		return "Anchored"
	case FleetInCombat:
		return "InCombat"
	case FleetBlockading:
		return "Blockading"
	case FleetFleeing:
		return "Fleeing"
	case FleetDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

// NavalPosition is a position and heading at sea.
type NavalPosition struct {
	X       float64
	Y       float64
	Heading float64
}

// Fleet is a group of ships under one admiral.
type Fleet struct {
	dirtyState

	ID         EntityID
	FleetID    string
	Name       string
	AdmiralID  EntityID
	ClanID     EntityID
	FlagshipID EntityID
	ShipIDs    []EntityID // save order
	Position   NavalPosition
	State      FleetState
	Formation  int32
	Morale     float64
	Gold       int64

	admiral  *Hero
	clan     *Clan
	flagship *Ship
	ships    []*Ship
}

// Admiral returns the resolved commanding hero, if any.
func (f *Fleet) Admiral() *Hero { return f.admiral }

// Clan returns the resolved owning clan, if any.
func (f *Fleet) Clan() *Clan { return f.clan }

// Flagship returns the resolved flagship, if any.
func (f *Fleet) Flagship() *Ship { return f.flagship }

// Ships returns the resolved ships of the fleet in save order.
func (f *Fleet) Ships() []*Ship { return f.ships }

// SetMorale sets the fleet's morale. Values outside [0, 100] are rejected.
func (f *Fleet) SetMorale(morale float64) error {
	if morale < 0 || morale > 100 {
		return fmt.Errorf("morale %v out of range [0, 100]", morale)
	}
	f.Morale = morale
	f.MarkDirty()
	return nil
}

// SetGold sets the fleet's treasury and marks the fleet dirty.
func (f *Fleet) SetGold(gold int64) {
	f.Gold = gold
	f.MarkDirty()
}

// Clone returns a deep copy of the fleet without resolver links or dirty
// state.
func (f *Fleet) Clone() *Fleet {
	c := *f
	c.dirtyState = dirtyState{}
	c.admiral, c.clan, c.flagship, c.ships = nil, nil, nil, nil
	c.ShipIDs = append([]EntityID(nil), f.ShipIDs...)
	return &c
}

// ShipType classifies a ship hull.
type ShipType uint8

const (
	ShipSnekkja ShipType = iota
	ShipCog
	ShipKnarr
	ShipLongship
	ShipGalley
	ShipWarship
	ShipCarrack
	ShipManOfWar
)

func (t ShipType) String() string {
	switch t {
	case ShipSnekkja:
		return "Snekkja"
	case ShipCog:
		return "Cog"
	case ShipKnarr:
		return "Knarr"
	case ShipLongship:
		return "Longship"
	case ShipGalley:
		return "Galley"
	case ShipWarship:
		return "Warship"
	case ShipCarrack:
		return "Carrack"
	case ShipManOfWar:
		return "ManOfWar"
	default:
		return "Unknown"
	}
}

// CargoItem is one entry of a ship's cargo hold.
type CargoItem struct {
	ItemID   string
	Quantity int32
}

// Ship is a single vessel, owned by at most one fleet.
type Ship struct {
	dirtyState

	ID          EntityID
	ShipID      string
	Name        string
	Type        ShipType
	HullPoints  int32
	CrewCount   int32
	CrewQuality int32
	CrewMorale  float64
	Upgrades    []uint32 // unique, kept in read order
	Cargo       []CargoItem
	FleetID     EntityID

	fleet *Fleet
}

// Fleet returns the resolved owning fleet, if any.
func (s *Ship) Fleet() *Fleet { return s.fleet }

// AddUpgrade adds an upgrade id to the ship's upgrade set. It returns
// false without modifying anything if the upgrade is already installed.
func (s *Ship) AddUpgrade(upgrade uint32) bool {
	for _, u := range s.Upgrades {
		if u == upgrade {
			return false
		}
	}
	s.Upgrades = append(s.Upgrades, upgrade)
	s.MarkDirty()
	return true
}

// SetCrew sets the crew count and marks the ship dirty. Negative counts
// are rejected.
func (s *Ship) SetCrew(count int32) error {
	if count < 0 {
		return fmt.Errorf("crew count %d out of range", count)
	}
	s.CrewCount = count
	s.MarkDirty()
	return nil
}

// Clone returns a deep copy of the ship without resolver links or dirty
// state.
func (s *Ship) Clone() *Ship {
	c := *s
	c.dirtyState = dirtyState{}
	c.fleet = nil
	c.Upgrades = append([]uint32(nil), s.Upgrades...)
	c.Cargo = append([]CargoItem(nil), s.Cargo...)
	return &c
}
