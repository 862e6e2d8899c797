package segments

import (
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

func decodeFactions(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative faction count %d", count)
	}
	for i := int32(0); i < count; i++ {
		f := &twsave.Faction{}
		f.ID = twsave.EntityID(r.EntityID())
		f.FactionID = r.String()
		f.Name = r.String()
		f.Type = twsave.FactionType(r.Uint8())
		f.Tier = r.Int32()
		f.Renown = r.Float64()
		f.Influence = r.Float64()
		f.Gold = r.Int64()
		f.Color1 = r.Uint32()
		f.Color2 = r.Uint32()

		if r.Err() != nil {
			return r.Err()
		}
		save.Factions = append(save.Factions, f)
	}
	return nil
}

func encodeFactions(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Factions)))
	for _, f := range save.Factions {
		w.EntityID(uint64(f.ID))
		w.String(f.FactionID)
		w.String(f.Name)
		w.Uint8(uint8(f.Type))
		w.Int32(f.Tier)
		w.Float64(f.Renown)
		w.Float64(f.Influence)
		w.Int64(f.Gold)
		w.Uint32(f.Color1)
		w.Uint32(f.Color2)
	}
}

func decodeClans(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative clan count %d", count)
	}
	for i := int32(0); i < count; i++ {
		c := &twsave.Clan{}
		c.ID = twsave.EntityID(r.EntityID())
		c.ClanID = r.String()
		c.Name = r.String()
		c.Tier = r.Int32()
		c.Renown = r.Float64()
		c.Influence = r.Float64()
		c.Gold = r.Int64()
		c.IsPlayerClan = r.Bool()
		c.KingdomID = twsave.EntityID(r.NullableEntityID())
		c.LeaderID = twsave.EntityID(r.NullableEntityID())
		c.Color1 = r.Uint32()
		c.Color2 = r.Uint32()

		if r.Err() != nil {
			return r.Err()
		}
		save.Clans = append(save.Clans, c)
	}
	return nil
}

func encodeClans(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Clans)))
	for _, c := range save.Clans {
		w.EntityID(uint64(c.ID))
		w.String(c.ClanID)
		w.String(c.Name)
		w.Int32(c.Tier)
		w.Float64(c.Renown)
		w.Float64(c.Influence)
		w.Int64(c.Gold)
		w.Bool(c.IsPlayerClan)
		w.NullableEntityID(uint64(c.KingdomID))
		w.NullableEntityID(uint64(c.LeaderID))
		w.Uint32(c.Color1)
		w.Uint32(c.Color2)
	}
}

func decodeKingdoms(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative kingdom count %d", count)
	}
	for i := int32(0); i < count; i++ {
		k := &twsave.Kingdom{}
		k.ID = twsave.EntityID(r.EntityID())
		k.KingdomID = r.String()
		k.Name = r.String()
		k.Tier = r.Int32()
		k.Renown = r.Float64()
		k.Influence = r.Float64()
		k.Gold = r.Int64()
		k.RulingClanID = twsave.EntityID(r.NullableEntityID())
		k.Color1 = r.Uint32()
		k.Color2 = r.Uint32()

		if r.Err() != nil {
			return r.Err()
		}
		save.Kingdoms = append(save.Kingdoms, k)
	}
	return nil
}

func encodeKingdoms(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Kingdoms)))
	for _, k := range save.Kingdoms {
		w.EntityID(uint64(k.ID))
		w.String(k.KingdomID)
		w.String(k.Name)
		w.Int32(k.Tier)
		w.Float64(k.Renown)
		w.Float64(k.Influence)
		w.Int64(k.Gold)
		w.NullableEntityID(uint64(k.RulingClanID))
		w.Uint32(k.Color1)
		w.Uint32(k.Color2)
	}
}
