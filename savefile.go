package twsave

// Magic is the four-byte ASCII tag at the start of every save file.
const Magic = "TWSV"

// Format version bounds accepted by the engine.
const (
	MinFormatVersion = 1
	MaxFormatVersion = 20
)

// Header is the decoded outer-frame header.
type Header struct {
	Version     int32
	GameVersion string

	// Payload sizes recorded after a load; informational only.
	CompressedSize   int
	UncompressedSize int
}

// Module is one entry of the save's module list. Order is load order.
type Module struct {
	ID       string
	Version  string
	Official bool
}

// UnknownSegment is a payload segment the decoder did not recognize,
// preserved byte-for-byte for re-emission.
type UnknownSegment struct {
	ID     uint16
	Data   []byte
	Offset int // offset of the segment header in the decompressed payload
}

// SaveFile is the root aggregate of a loaded save. It exclusively owns all
// entity collections; cross-entity references are ids resolved into
// non-owning links by Resolve.
type SaveFile struct {
	Header   Header
	Modules  []Module
	Metadata Metadata

	Time    CampaignTime
	HasTime bool // whether the payload carried a campaign-time segment

	Heroes      []*Hero
	Parties     []*Party
	Settlements []*Settlement
	Factions    []*Faction
	Clans       []*Clan
	Kingdoms    []*Kingdom
	Fleets      []*Fleet
	Ships       []*Ship

	UnknownSegments []*UnknownSegment

	// RawPayload is the decompressed payload, retained only when the load
	// asked for it.
	RawPayload []byte

	// Report is the validation report from the load, when validation ran.
	Report *ValidationReport

	heroIndex  map[EntityID]*Hero
	partyIndex map[EntityID]*Party
	clanIndex  map[EntityID]*Clan
	fleetIndex map[EntityID]*Fleet
	shipIndex  map[EntityID]*Ship

	dangling []DanglingReference
}

// SetTime sets the campaign tick count.
func (s *SaveFile) SetTime(ticks int64) {
	s.Time.Ticks = ticks
	s.HasTime = true
}

// HeroByID returns the hero with the given id, or nil. Requires Resolve.
func (s *SaveFile) HeroByID(id EntityID) *Hero {
	return s.heroIndex[id]
}

// PartyByID returns the party with the given id, or nil. Requires Resolve.
func (s *SaveFile) PartyByID(id EntityID) *Party {
	return s.partyIndex[id]
}

// ClanByID returns the clan with the given id, or nil. Requires Resolve.
func (s *SaveFile) ClanByID(id EntityID) *Clan {
	return s.clanIndex[id]
}

// FleetByID returns the fleet with the given id, or nil. Requires Resolve.
func (s *SaveFile) FleetByID(id EntityID) *Fleet {
	return s.fleetIndex[id]
}

// ShipByID returns the ship with the given id, or nil. Requires Resolve.
func (s *SaveFile) ShipByID(id EntityID) *Ship {
	return s.shipIndex[id]
}

// Dangling returns the references recorded by the last Resolve that did
// not match any entity in this save.
func (s *SaveFile) Dangling() []DanglingReference {
	return s.dangling
}

// MainHero returns the first hero whose string id marks the player
// character, or nil.
func (s *SaveFile) MainHero() *Hero {
	for _, h := range s.Heroes {
		if h.HeroID == "main_hero" {
			return h
		}
	}
	return nil
}

// PlayerClan returns the clan flagged as the player's, or nil.
func (s *SaveFile) PlayerClan() *Clan {
	for _, c := range s.Clans {
		if c.IsPlayerClan {
			return c
		}
	}
	return nil
}

// AnyDirty reports whether any entity in the save carries the dirty flag.
func (s *SaveFile) AnyDirty() bool {
	for _, h := range s.Heroes {
		if h.IsDirty() {
			return true
		}
	}
	for _, p := range s.Parties {
		if p.IsDirty() {
			return true
		}
	}
	for _, st := range s.Settlements {
		if st.IsDirty() {
			return true
		}
	}
	for _, f := range s.Factions {
		if f.IsDirty() {
			return true
		}
	}
	for _, c := range s.Clans {
		if c.IsDirty() {
			return true
		}
	}
	for _, k := range s.Kingdoms {
		if k.IsDirty() {
			return true
		}
	}
	for _, f := range s.Fleets {
		if f.IsDirty() {
			return true
		}
	}
	for _, sh := range s.Ships {
		if sh.IsDirty() {
			return true
		}
	}
	return false
}

// ClearDirty resets the dirty flag on every entity, typically after a
// successful save.
func (s *SaveFile) ClearDirty() {
	for _, h := range s.Heroes {
		h.ClearDirty()
	}
	for _, p := range s.Parties {
		p.ClearDirty()
	}
	for _, st := range s.Settlements {
		st.ClearDirty()
	}
	for _, f := range s.Factions {
		f.ClearDirty()
	}
	for _, c := range s.Clans {
		c.ClearDirty()
	}
	for _, k := range s.Kingdoms {
		k.ClearDirty()
	}
	for _, f := range s.Fleets {
		f.ClearDirty()
	}
	for _, sh := range s.Ships {
		sh.ClearDirty()
	}
}
