package twsave

import "fmt"

// Severity of a validation finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Validation finding kinds.
const (
	FindingDanglingReference = "dangling-reference"
	FindingOutOfRange        = "out-of-range"
	FindingWoundedExceeds    = "wounded-exceeds-count"
	FindingDuplicatePerk     = "duplicate-perk"
	FindingDuplicateUpgrade  = "duplicate-upgrade"
	FindingEmptyID           = "empty-id"
	FindingFlagshipMissing   = "flagship-not-in-fleet"
	FindingShipFleetMismatch = "ship-fleet-mismatch"
	FindingDeadLeader        = "dead-party-leader"
	FindingEmptyGameVersion  = "empty-game-version"
	FindingEmptyModuleList   = "empty-module-list"
)

// Finding is a single validation result.
type Finding struct {
	Kind     string
	Severity Severity
	Message  string
	Entities []EntityID
}

// ValidationReport aggregates validation findings by severity. The
// reporter never mutates the save it inspects.
type ValidationReport struct {
	Errors   []Finding
	Warnings []Finding
	Infos    []Finding
}

// Add files a finding under its severity.
func (r *ValidationReport) Add(f Finding) {
	switch f.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, f)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
	default:
		r.Infos = append(r.Infos, f)
	}
}

// HasErrors reports whether any error-severity finding was filed.
func (r *ValidationReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// Len returns the total number of findings.
func (r *ValidationReport) Len() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Infos)
}

// Validate runs the structural, cross-entity, and header checks over a
// save and returns the report. The save must have been resolved for
// dangling-reference findings to appear; Validate calls Resolve if the
// lookup maps are missing.
func Validate(s *SaveFile) *ValidationReport {
	if s.heroIndex == nil {
		s.Resolve()
	}
	r := &ValidationReport{}

	if s.Header.GameVersion == "" {
		r.Add(Finding{
			Kind:     FindingEmptyGameVersion,
			Severity: SeverityWarning,
			Message:  "game version string is empty",
		})
	}
	if len(s.Modules) == 0 {
		r.Add(Finding{
			Kind:     FindingEmptyModuleList,
			Severity: SeverityInfo,
			Message:  "module list is empty",
		})
	}

	for _, d := range s.dangling {
		r.Add(Finding{
			Kind:     FindingDanglingReference,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s of %s refers to missing entity %s", d.Field, d.From, d.To),
			Entities: []EntityID{d.From, d.To},
		})
	}

	for _, h := range s.Heroes {
		validateHero(r, h)
	}
	for _, p := range s.Parties {
		validateParty(r, p, s)
	}
	for _, f := range s.Fleets {
		validateFleet(r, f, s)
	}
	for _, sh := range s.Ships {
		validateShip(r, sh, s)
	}

	return r
}

func validateHero(r *ValidationReport, h *Hero) {
	if h.ID.IsZero() {
		r.Add(Finding{
			Kind:     FindingEmptyID,
			Severity: SeverityError,
			Message:  fmt.Sprintf("hero %q has an empty entity id", h.Name),
		})
	}
	if h.Health < 0 || h.Health > 1 {
		r.Add(Finding{
			Kind:     FindingOutOfRange,
			Severity: SeverityError,
			Message:  fmt.Sprintf("hero %s health %v outside [0, 1]", h.ID, h.Health),
			Entities: []EntityID{h.ID},
		})
	}
	for i, v := range h.Skills {
		if v < 0 || v > MaxSkillValue {
			r.Add(Finding{
				Kind:     FindingOutOfRange,
				Severity: SeverityError,
				Message:  fmt.Sprintf("hero %s skill %s value %d outside [0, %d]", h.ID, Skill(i), v, MaxSkillValue),
				Entities: []EntityID{h.ID},
			})
		}
	}
	for _, v := range []int32{
		h.Attributes.Vigor, h.Attributes.Control, h.Attributes.Endurance,
		h.Attributes.Cunning, h.Attributes.Social, h.Attributes.Intelligence,
	} {
		if v < 0 || v > MaxAttributeValue {
			r.Add(Finding{
				Kind:     FindingOutOfRange,
				Severity: SeverityError,
				Message:  fmt.Sprintf("hero %s attribute value %d outside [0, %d]", h.ID, v, MaxAttributeValue),
				Entities: []EntityID{h.ID},
			})
		}
	}
	seen := make(map[uint32]bool, len(h.Perks))
	for _, p := range h.Perks {
		if seen[p] {
			r.Add(Finding{
				Kind:     FindingDuplicatePerk,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("hero %s has duplicate perk %d", h.ID, p),
				Entities: []EntityID{h.ID},
			})
		}
		seen[p] = true
	}
}

func validateParty(r *ValidationReport, p *Party, s *SaveFile) {
	if p.ID.IsZero() {
		r.Add(Finding{
			Kind:     FindingEmptyID,
			Severity: SeverityError,
			Message:  fmt.Sprintf("party %q has an empty entity id", p.Name),
		})
	}
	if p.Morale < 0 || p.Morale > 100 {
		r.Add(Finding{
			Kind:     FindingOutOfRange,
			Severity: SeverityError,
			Message:  fmt.Sprintf("party %s morale %v outside [0, 100]", p.ID, p.Morale),
			Entities: []EntityID{p.ID},
		})
	}
	checkStacks := func(kind string, stacks []TroopStack) {
		for i, st := range stacks {
			if st.Count < 0 {
				r.Add(Finding{
					Kind:     FindingOutOfRange,
					Severity: SeverityError,
					Message:  fmt.Sprintf("party %s %s stack %d count %d is negative", p.ID, kind, i, st.Count),
					Entities: []EntityID{p.ID},
				})
			}
			if st.Wounded < 0 || st.Wounded > st.Count {
				r.Add(Finding{
					Kind:     FindingWoundedExceeds,
					Severity: SeverityError,
					Message:  fmt.Sprintf("party %s %s stack %d wounded %d exceeds count %d", p.ID, kind, i, st.Wounded, st.Count),
					Entities: []EntityID{p.ID},
				})
			}
		}
	}
	checkStacks("troop", p.Troops)
	checkStacks("prisoner", p.Prisoners)

	if !p.LeaderID.IsZero() {
		if leader := s.HeroByID(p.LeaderID); leader != nil && leader.State == HeroDead {
			r.Add(Finding{
				Kind:     FindingDeadLeader,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("party %s is led by dead hero %s", p.ID, leader.ID),
				Entities: []EntityID{p.ID, leader.ID},
			})
		}
	}
}

func validateFleet(r *ValidationReport, f *Fleet, s *SaveFile) {
	if f.Morale < 0 || f.Morale > 100 {
		r.Add(Finding{
			Kind:     FindingOutOfRange,
			Severity: SeverityError,
			Message:  fmt.Sprintf("fleet %s morale %v outside [0, 100]", f.ID, f.Morale),
			Entities: []EntityID{f.ID},
		})
	}
	if !f.FlagshipID.IsZero() {
		found := false
		for _, id := range f.ShipIDs {
			if id == f.FlagshipID {
				found = true
				break
			}
		}
		if !found {
			r.Add(Finding{
				Kind:     FindingFlagshipMissing,
				Severity: SeverityError,
				Message:  fmt.Sprintf("fleet %s flagship %s is not in its ship list", f.ID, f.FlagshipID),
				Entities: []EntityID{f.ID, f.FlagshipID},
			})
		}
	}
	for _, id := range f.ShipIDs {
		if ship := s.ShipByID(id); ship != nil && ship.FleetID != f.ID {
			r.Add(Finding{
				Kind:     FindingShipFleetMismatch,
				Severity: SeverityError,
				Message:  fmt.Sprintf("ship %s is listed by fleet %s but claims fleet %s", id, f.ID, ship.FleetID),
				Entities: []EntityID{f.ID, id},
			})
		}
	}
}

func validateShip(r *ValidationReport, sh *Ship, s *SaveFile) {
	if sh.CrewMorale < 0 || sh.CrewMorale > 100 {
		r.Add(Finding{
			Kind:     FindingOutOfRange,
			Severity: SeverityError,
			Message:  fmt.Sprintf("ship %s crew morale %v outside [0, 100]", sh.ID, sh.CrewMorale),
			Entities: []EntityID{sh.ID},
		})
	}
	seen := make(map[uint32]bool, len(sh.Upgrades))
	for _, u := range sh.Upgrades {
		if seen[u] {
			r.Add(Finding{
				Kind:     FindingDuplicateUpgrade,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("ship %s has duplicate upgrade %d", sh.ID, u),
				Entities: []EntityID{sh.ID},
			})
		}
		seen[u] = true
	}
}
