package twsave

// DanglingReference records an entity reference that did not resolve to
// any entity in the same save. Dangling references are reported, never
// fatal.
type DanglingReference struct {
	From  EntityID
	Field string
	To    EntityID
}

// Resolve builds the id lookup maps and populates the non-owning
// convenience links between entities (hero to clan, party to leader, fleet
// to admiral and ships, ship to fleet). References whose target id is not
// present are recorded and retrievable via Dangling.
//
// Resolve is idempotent; it is called by the loader and again by callers
// that add or remove entities.
func (s *SaveFile) Resolve() {
	s.heroIndex = make(map[EntityID]*Hero, len(s.Heroes))
	s.partyIndex = make(map[EntityID]*Party, len(s.Parties))
	s.clanIndex = make(map[EntityID]*Clan, len(s.Clans))
	s.fleetIndex = make(map[EntityID]*Fleet, len(s.Fleets))
	s.shipIndex = make(map[EntityID]*Ship, len(s.Ships))
	s.dangling = nil

	for _, h := range s.Heroes {
		s.heroIndex[h.ID] = h
	}
	for _, p := range s.Parties {
		s.partyIndex[p.ID] = p
	}
	for _, c := range s.Clans {
		s.clanIndex[c.ID] = c
	}
	for _, f := range s.Fleets {
		s.fleetIndex[f.ID] = f
	}
	for _, sh := range s.Ships {
		s.shipIndex[sh.ID] = sh
	}

	for _, h := range s.Heroes {
		h.clan = s.lookupClan(h.ID, "ClanID", h.ClanID)
		h.party = s.lookupParty(h.ID, "PartyID", h.PartyID)
		h.fleet = s.lookupFleet(h.ID, "FleetID", h.FleetID)
	}

	for _, p := range s.Parties {
		p.leader = s.lookupHero(p.ID, "LeaderID", p.LeaderID)
		p.clan = s.lookupClan(p.ID, "ClanID", p.ClanID)
	}

	for _, sh := range s.Ships {
		sh.fleet = s.lookupFleet(sh.ID, "FleetID", sh.FleetID)
	}

	for _, f := range s.Fleets {
		f.admiral = s.lookupHero(f.ID, "AdmiralID", f.AdmiralID)
		f.clan = s.lookupClan(f.ID, "ClanID", f.ClanID)
		f.flagship = s.lookupShip(f.ID, "FlagshipID", f.FlagshipID)
		f.ships = f.ships[:0]
		for _, sh := range s.Ships {
			if sh.FleetID == f.ID {
				f.ships = append(f.ships, sh)
			}
		}
	}
}

func (s *SaveFile) lookupHero(from EntityID, field string, id EntityID) *Hero {
	if id.IsZero() {
		return nil
	}
	h, ok := s.heroIndex[id]
	if !ok {
		s.dangling = append(s.dangling, DanglingReference{From: from, Field: field, To: id})
	}
	return h
}

func (s *SaveFile) lookupParty(from EntityID, field string, id EntityID) *Party {
	if id.IsZero() {
		return nil
	}
	p, ok := s.partyIndex[id]
	if !ok {
		s.dangling = append(s.dangling, DanglingReference{From: from, Field: field, To: id})
	}
	return p
}

func (s *SaveFile) lookupClan(from EntityID, field string, id EntityID) *Clan {
	if id.IsZero() {
		return nil
	}
	c, ok := s.clanIndex[id]
	if !ok {
		s.dangling = append(s.dangling, DanglingReference{From: from, Field: field, To: id})
	}
	return c
}

func (s *SaveFile) lookupFleet(from EntityID, field string, id EntityID) *Fleet {
	if id.IsZero() {
		return nil
	}
	f, ok := s.fleetIndex[id]
	if !ok {
		s.dangling = append(s.dangling, DanglingReference{From: from, Field: field, To: id})
	}
	return f
}

func (s *SaveFile) lookupShip(from EntityID, field string, id EntityID) *Ship {
	if id.IsZero() {
		return nil
	}
	sh, ok := s.shipIndex[id]
	if !ok {
		s.dangling = append(s.dangling, DanglingReference{From: from, Field: field, To: id})
	}
	return sh
}
