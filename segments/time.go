package segments

import (
	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

func decodeTime(r *encoding.Reader, save *twsave.SaveFile) error {
	save.Time.Ticks = r.Int64()
	save.HasTime = true
	return nil
}

func encodeTime(w *encoding.Writer, save *twsave.SaveFile) {
	w.Int64(save.Time.Ticks)
}
