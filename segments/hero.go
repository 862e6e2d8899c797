package segments

import (
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

func decodeHeroes(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative hero count %d", count)
	}
	for i := int32(0); i < count; i++ {
		h := &twsave.Hero{}
		h.ID = twsave.EntityID(r.EntityID())
		h.HeroID = r.String()
		h.Name = r.String()
		h.FirstName, h.HasFirstName = r.NullableString()
		h.Gender = twsave.Gender(r.Uint8())
		h.Age = r.Float64()
		h.Level = r.Int32()
		h.Experience = r.Int64()
		h.AttributePts = r.Int32()
		h.FocusPts = r.Int32()
		h.Gold = r.Int64()
		h.Health = r.Float64()
		h.State = twsave.HeroState(r.Uint8())

		h.Attributes.Vigor = r.Int32()
		h.Attributes.Control = r.Int32()
		h.Attributes.Endurance = r.Int32()
		h.Attributes.Cunning = r.Int32()
		h.Attributes.Social = r.Int32()
		h.Attributes.Intelligence = r.Int32()

		skillCount := r.Int32()
		if skillCount < 0 {
			return fmt.Errorf("hero %s: negative skill count %d", h.ID, skillCount)
		}
		for s := int32(0); s < skillCount; s++ {
			v := r.Int32()
			if s < int32(twsave.SkillCount) {
				h.Skills[s] = v
			}
		}

		h.HasNaval = r.Bool()
		if h.HasNaval {
			h.Naval.Seamanship = r.Int32()
			h.Naval.Navigation = r.Int32()
			h.Naval.Boarding = r.Int32()
		}

		perkCount := r.Int32()
		if perkCount < 0 {
			return fmt.Errorf("hero %s: negative perk count %d", h.ID, perkCount)
		}
		for p := int32(0); p < perkCount; p++ {
			h.Perks = append(h.Perks, r.Uint32())
		}

		h.ClanID = twsave.EntityID(r.NullableEntityID())
		h.PartyID = twsave.EntityID(r.NullableEntityID())
		h.FleetID = twsave.EntityID(r.NullableEntityID())

		if r.Err() != nil {
			return r.Err()
		}
		save.Heroes = append(save.Heroes, h)
	}
	return nil
}

func encodeHeroes(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Heroes)))
	for _, h := range save.Heroes {
		w.EntityID(uint64(h.ID))
		w.String(h.HeroID)
		w.String(h.Name)
		w.NullableString(h.FirstName, h.HasFirstName)
		w.Uint8(uint8(h.Gender))
		w.Float64(h.Age)
		w.Int32(h.Level)
		w.Int64(h.Experience)
		w.Int32(h.AttributePts)
		w.Int32(h.FocusPts)
		w.Int64(h.Gold)
		w.Float64(h.Health)
		w.Uint8(uint8(h.State))

		w.Int32(h.Attributes.Vigor)
		w.Int32(h.Attributes.Control)
		w.Int32(h.Attributes.Endurance)
		w.Int32(h.Attributes.Cunning)
		w.Int32(h.Attributes.Social)
		w.Int32(h.Attributes.Intelligence)

		w.Int32(int32(twsave.SkillCount))
		for _, v := range h.Skills {
			w.Int32(v)
		}

		w.Bool(h.HasNaval)
		if h.HasNaval {
			w.Int32(h.Naval.Seamanship)
			w.Int32(h.Naval.Navigation)
			w.Int32(h.Naval.Boarding)
		}

		w.Int32(int32(len(h.Perks)))
		for _, p := range h.Perks {
			w.Uint32(p)
		}

		w.NullableEntityID(uint64(h.ClanID))
		w.NullableEntityID(uint64(h.PartyID))
		w.NullableEntityID(uint64(h.FleetID))
	}
}
