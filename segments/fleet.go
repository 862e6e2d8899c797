package segments

import (
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

func decodeFleets(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative fleet count %d", count)
	}
	for i := int32(0); i < count; i++ {
		f := &twsave.Fleet{}
		f.ID = twsave.EntityID(r.EntityID())
		f.FleetID = r.String()
		f.Name = r.String()
		f.AdmiralID = twsave.EntityID(r.NullableEntityID())
		f.ClanID = twsave.EntityID(r.NullableEntityID())
		f.FlagshipID = twsave.EntityID(r.NullableEntityID())

		shipCount := r.Int32()
		if shipCount < 0 {
			return fmt.Errorf("fleet %s: negative ship count %d", f.ID, shipCount)
		}
		for s := int32(0); s < shipCount; s++ {
			f.ShipIDs = append(f.ShipIDs, twsave.EntityID(r.EntityID()))
		}

		f.Position.X = r.Float64()
		f.Position.Y = r.Float64()
		f.Position.Heading = r.Float64()
		f.State = twsave.FleetState(r.Uint8())
		f.Formation = r.Int32()
		f.Morale = r.Float64()
		f.Gold = r.Int64()

		if r.Err() != nil {
			return r.Err()
		}
		save.Fleets = append(save.Fleets, f)
	}
	return nil
}

func encodeFleets(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Fleets)))
	for _, f := range save.Fleets {
		w.EntityID(uint64(f.ID))
		w.String(f.FleetID)
		w.String(f.Name)
		w.NullableEntityID(uint64(f.AdmiralID))
		w.NullableEntityID(uint64(f.ClanID))
		w.NullableEntityID(uint64(f.FlagshipID))
		w.Int32(int32(len(f.ShipIDs)))
		for _, id := range f.ShipIDs {
			w.EntityID(uint64(id))
		}
		w.Float64(f.Position.X)
		w.Float64(f.Position.Y)
		w.Float64(f.Position.Heading)
		w.Uint8(uint8(f.State))
		w.Int32(f.Formation)
		w.Float64(f.Morale)
		w.Int64(f.Gold)
	}
}

func decodeShips(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative ship count %d", count)
	}
	for i := int32(0); i < count; i++ {
		s := &twsave.Ship{}
		s.ID = twsave.EntityID(r.EntityID())
		s.ShipID = r.String()
		s.Name = r.String()
		s.Type = twsave.ShipType(r.Uint8())
		s.HullPoints = r.Int32()
		s.CrewCount = r.Int32()
		s.CrewQuality = r.Int32()
		s.CrewMorale = r.Float64()

		upgradeCount := r.Int32()
		if upgradeCount < 0 {
			return fmt.Errorf("ship %s: negative upgrade count %d", s.ID, upgradeCount)
		}
		for u := int32(0); u < upgradeCount; u++ {
			s.Upgrades = append(s.Upgrades, r.Uint32())
		}

		cargoCount := r.Int32()
		if cargoCount < 0 {
			return fmt.Errorf("ship %s: negative cargo count %d", s.ID, cargoCount)
		}
		for c := int32(0); c < cargoCount; c++ {
			var item twsave.CargoItem
			item.ItemID = r.String()
			item.Quantity = r.Int32()
			s.Cargo = append(s.Cargo, item)
		}

		s.FleetID = twsave.EntityID(r.NullableEntityID())

		if r.Err() != nil {
			return r.Err()
		}
		save.Ships = append(save.Ships, s)
	}
	return nil
}

func encodeShips(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Ships)))
	for _, s := range save.Ships {
		w.EntityID(uint64(s.ID))
		w.String(s.ShipID)
		w.String(s.Name)
		w.Uint8(uint8(s.Type))
		w.Int32(s.HullPoints)
		w.Int32(s.CrewCount)
		w.Int32(s.CrewQuality)
		w.Float64(s.CrewMorale)
		w.Int32(int32(len(s.Upgrades)))
		for _, u := range s.Upgrades {
			w.Uint32(u)
		}
		w.Int32(int32(len(s.Cargo)))
		for _, c := range s.Cargo {
			w.String(c.ItemID)
			w.Int32(c.Quantity)
		}
		w.NullableEntityID(uint64(s.FleetID))
	}
}
