package segments

import (
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

func decodeParties(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative party count %d", count)
	}
	for i := int32(0); i < count; i++ {
		p := &twsave.Party{}
		p.ID = twsave.EntityID(r.EntityID())
		p.PartyID = r.String()
		p.Name = r.String()
		p.Type = twsave.PartyType(r.Uint8())
		p.State = twsave.PartyState(r.Uint8())
		p.Gold = r.Int64()
		p.Food = r.Float64()
		p.Morale = r.Float64()
		p.SizeLimit = r.Int32()
		p.PrisonerLimit = r.Int32()
		p.Position.X = r.Float64()
		p.Position.Y = r.Float64()
		p.LeaderID = twsave.EntityID(r.NullableEntityID())
		p.ClanID = twsave.EntityID(r.NullableEntityID())
		p.SettlementID = twsave.EntityID(r.NullableEntityID())

		var err error
		if p.Troops, err = decodeStacks(r); err != nil {
			return fmt.Errorf("party %s troops: %w", p.ID, err)
		}
		if p.Prisoners, err = decodeStacks(r); err != nil {
			return fmt.Errorf("party %s prisoners: %w", p.ID, err)
		}

		if r.Err() != nil {
			return r.Err()
		}
		save.Parties = append(save.Parties, p)
	}
	return nil
}

func decodeStacks(r *encoding.Reader) ([]twsave.TroopStack, error) {
	count := r.Int32()
	if count < 0 {
		return nil, fmt.Errorf("negative stack count %d", count)
	}
	if count == 0 {
		return nil, r.Err()
	}
	stacks := make([]twsave.TroopStack, 0, count)
	for i := int32(0); i < count; i++ {
		var s twsave.TroopStack
		s.TroopID = r.String()
		s.Name = r.String()
		s.Count = r.Int32()
		s.Wounded = r.Int32()
		s.Tier = r.Int32()
		s.IsHero = r.Bool()
		s.HeroID = twsave.EntityID(r.NullableEntityID())
		if r.Err() != nil {
			return nil, r.Err()
		}
		stacks = append(stacks, s)
	}
	return stacks, nil
}

func encodeParties(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Parties)))
	for _, p := range save.Parties {
		w.EntityID(uint64(p.ID))
		w.String(p.PartyID)
		w.String(p.Name)
		w.Uint8(uint8(p.Type))
		w.Uint8(uint8(p.State))
		w.Int64(p.Gold)
		w.Float64(p.Food)
		w.Float64(p.Morale)
		w.Int32(p.SizeLimit)
		w.Int32(p.PrisonerLimit)
		w.Float64(p.Position.X)
		w.Float64(p.Position.Y)
		w.NullableEntityID(uint64(p.LeaderID))
		w.NullableEntityID(uint64(p.ClanID))
		w.NullableEntityID(uint64(p.SettlementID))
		encodeStacks(w, p.Troops)
		encodeStacks(w, p.Prisoners)
	}
}

func encodeStacks(w *encoding.Writer, stacks []twsave.TroopStack) {
	w.Int32(int32(len(stacks)))
	for _, s := range stacks {
		w.String(s.TroopID)
		w.String(s.Name)
		w.Int32(s.Count)
		w.Int32(s.Wounded)
		w.Int32(s.Tier)
		w.Bool(s.IsHero)
		w.NullableEntityID(uint64(s.HeroID))
	}
}
