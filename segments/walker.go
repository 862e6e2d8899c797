// Package segments walks the typed segments of a decompressed save
// payload and translates them to and from the campaign model.
//
// Each segment is framed as a 16-bit id, a 32-bit content length, and the
// content bytes. Segments with unrecognized ids are preserved verbatim and
// re-emitted unchanged on save, after the known segments, in their
// original relative order. Quest, workshop, and caravan segments carry no
// decoded schema and travel the same preservation path.
package segments

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
	"github.com/bannerkit/twsave/log"
)

// ErrTruncatedSegment is returned when a segment's content ends before its
// decoder has read the fields the length prefix promised.
var ErrTruncatedSegment = errors.New("truncated segment")

// DecodeError reports a failure inside one segment.
type DecodeError struct {
	ID  uint16
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("segment 0x%04X: %v", e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodePayload walks the decompressed payload and fills the save's
// entity collections. Unknown segments are recorded on the save for
// re-emission. In permissive mode a failing segment is logged and
// skipped; otherwise the walk stops with a DecodeError.
//
// The walk ends when fewer bytes than one segment header remain.
func DecodePayload(ctx context.Context, payload []byte, save *twsave.SaveFile, permissive bool) error {
	off := 0
	for len(payload)-off >= segmentHeaderSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		id := binary.LittleEndian.Uint16(payload[off:])
		length := int(binary.LittleEndian.Uint32(payload[off+2:]))
		start := off
		if length < 0 || off+segmentHeaderSize+length > len(payload) {
			return &DecodeError{ID: id, Err: fmt.Errorf("%w: length %d exceeds payload", ErrTruncatedSegment, length)}
		}
		content := payload[off+segmentHeaderSize : off+segmentHeaderSize+length]
		off += segmentHeaderSize + length

		if err := decodeSegment(id, content, start, save); err != nil {
			if !permissive {
				return err
			}
			log.Warn("skipping bad segment",
				log.F("id", id), log.F("offset", start), log.F("err", err))
		}
	}
	return nil
}

func decodeSegment(id uint16, content []byte, offset int, save *twsave.SaveFile) error {
	r := encoding.NewReader(content)
	var err error
	switch id {
	case TimeSegment:
		err = decodeTime(r, save)
	case HeroesSegment:
		err = decodeHeroes(r, save)
	case PartiesSegment:
		err = decodeParties(r, save)
	case SettlementsSegment:
		err = decodeSettlements(r, save)
	case FactionsSegment:
		err = decodeFactions(r, save)
	case ClansSegment:
		err = decodeClans(r, save)
	case KingdomsSegment:
		err = decodeKingdoms(r, save)
	case FleetsSegment:
		err = decodeFleets(r, save)
	case ShipsSegment:
		err = decodeShips(r, save)
	default:
		// Preserved verbatim, including the quest, workshop, and caravan
		// segments the model carries no schema for.
		data := make([]byte, len(content))
		copy(data, content)
		save.UnknownSegments = append(save.UnknownSegments, &twsave.UnknownSegment{
			ID:     id,
			Data:   data,
			Offset: offset,
		})
		return nil
	}
	if r.Err() != nil && (err == nil || errors.Is(err, r.Err())) {
		err = fmt.Errorf("%w: %v", ErrTruncatedSegment, r.Err())
	}
	if err != nil {
		return &DecodeError{ID: id, Err: err}
	}
	return nil
}

// EncodePayload serializes the save's entity collections back into a
// segment stream. Known segments come first in canonical id order; the
// preserved unknown segments follow in their original relative order,
// byte-for-byte.
//
// Each segment's length field is reserved, the content written, then the
// length backfilled with the bytes actually produced.
func EncodePayload(ctx context.Context, save *twsave.SaveFile) ([]byte, error) {
	w := encoding.NewWriter()

	type part struct {
		id    uint16
		write func(*encoding.Writer)
		skip  bool
	}
	parts := []part{
		{TimeSegment, func(w *encoding.Writer) { encodeTime(w, save) }, !save.HasTime},
		{HeroesSegment, func(w *encoding.Writer) { encodeHeroes(w, save) }, len(save.Heroes) == 0},
		{PartiesSegment, func(w *encoding.Writer) { encodeParties(w, save) }, len(save.Parties) == 0},
		{SettlementsSegment, func(w *encoding.Writer) { encodeSettlements(w, save) }, len(save.Settlements) == 0},
		{FactionsSegment, func(w *encoding.Writer) { encodeFactions(w, save) }, len(save.Factions) == 0},
		{ClansSegment, func(w *encoding.Writer) { encodeClans(w, save) }, len(save.Clans) == 0},
		{KingdomsSegment, func(w *encoding.Writer) { encodeKingdoms(w, save) }, len(save.Kingdoms) == 0},
		{FleetsSegment, func(w *encoding.Writer) { encodeFleets(w, save) }, len(save.Fleets) == 0},
		{ShipsSegment, func(w *encoding.Writer) { encodeShips(w, save) }, len(save.Ships) == 0},
	}

	for _, p := range parts {
		if p.skip {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.Uint16(p.id)
		pos := w.Reserve32()
		p.write(w)
		w.BackfillLength(pos)
	}

	for _, u := range save.UnknownSegments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.Uint16(u.ID)
		w.Uint32(uint32(len(u.Data)))
		w.Raw(u.Data)
	}

	return w.Bytes(), nil
}
