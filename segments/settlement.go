package segments

import (
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

func decodeSettlements(r *encoding.Reader, save *twsave.SaveFile) error {
	count := r.Int32()
	if count < 0 {
		return fmt.Errorf("negative settlement count %d", count)
	}
	for i := int32(0); i < count; i++ {
		s := &twsave.Settlement{}
		s.ID = twsave.EntityID(r.EntityID())
		s.SettlementID = r.String()
		s.Name = r.String()
		s.Type = twsave.SettlementType(r.Uint8())
		s.Position.X = r.Float64()
		s.Position.Y = r.Float64()
		s.OwnerClanID = twsave.EntityID(r.NullableEntityID())
		s.Prosperity = r.Float64()
		s.Loyalty = r.Float64()
		s.Security = r.Float64()
		s.FoodStocks = r.Float64()
		s.Militia = r.Float64()
		s.Garrison = r.Int32()
		s.WallLevel = r.Int32()

		if r.Err() != nil {
			return r.Err()
		}
		save.Settlements = append(save.Settlements, s)
	}
	return nil
}

func encodeSettlements(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int32(int32(len(save.Settlements)))
	for _, s := range save.Settlements {
		w.EntityID(uint64(s.ID))
		w.String(s.SettlementID)
		w.String(s.Name)
		w.Uint8(uint8(s.Type))
		w.Float64(s.Position.X)
		w.Float64(s.Position.Y)
		w.NullableEntityID(uint64(s.OwnerClanID))
		w.Float64(s.Prosperity)
		w.Float64(s.Loyalty)
		w.Float64(s.Security)
		w.Float64(s.FoodStocks)
		w.Float64(s.Militia)
		w.Int32(s.Garrison)
		w.Int32(s.WallLevel)
	}
}
