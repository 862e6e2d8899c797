package segments

// Segment ids of the decompressed payload.
const (
	TimeSegment        uint16 = 0x0001
	HeroesSegment      uint16 = 0x0010
	PartiesSegment     uint16 = 0x0020
	SettlementsSegment uint16 = 0x0030
	FactionsSegment    uint16 = 0x0040
	ClansSegment       uint16 = 0x0050
	KingdomsSegment    uint16 = 0x0060
	QuestsSegment      uint16 = 0x0070
	WorkshopsSegment   uint16 = 0x0080
	CaravansSegment    uint16 = 0x0090
	FleetsSegment      uint16 = 0x0100
	ShipsSegment       uint16 = 0x0101
)

// segmentHeaderSize is the framing overhead per segment: a 16-bit id and a
// 32-bit content length.
const segmentHeaderSize = 6
