package twsave

import (
	"encoding/json"
	"fmt"
	"math"
)

// Recognized metadata keys. Anything else in the metadata block is opaque
// pass-through.
const (
	MetaCharacterName = "CharacterName"
	MetaMainHeroLevel = "MainHeroLevel"
	MetaDayLong       = "DayLong"
	MetaPlayTime      = "PlayTime"
	MetaClanName      = "ClanName"
	MetaGold          = "Gold"
)

// Metadata is the small JSON block in the outer frame that launchers read
// without decompressing the payload. Recognized keys get typed fields; all
// other keys are preserved verbatim in Extra and re-emitted on save.
type Metadata struct {
	CharacterName string
	MainHeroLevel int
	Day           int64 // integer truncation of the DayLong value
	PlayTime      float64
	ClanName      string
	HasClanName   bool
	Gold          int64

	Extra map[string]json.RawMessage
}

// ParseMetadata decodes a metadata JSON block. Unknown keys land in Extra
// untouched.
func ParseMetadata(data []byte) (Metadata, error) {
	var md Metadata
	if len(data) == 0 {
		return md, nil
	}
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return md, fmt.Errorf("metadata block: %w", err)
	}

	if v, ok := raw[MetaCharacterName]; ok {
		if err := json.Unmarshal(v, &md.CharacterName); err != nil {
			return md, fmt.Errorf("metadata %s: %w", MetaCharacterName, err)
		}
		delete(raw, MetaCharacterName)
	}
	if v, ok := raw[MetaMainHeroLevel]; ok {
		var level float64
		if err := json.Unmarshal(v, &level); err != nil {
			return md, fmt.Errorf("metadata %s: %w", MetaMainHeroLevel, err)
		}
		md.MainHeroLevel = int(level)
		delete(raw, MetaMainHeroLevel)
	}
	if v, ok := raw[MetaDayLong]; ok {
		var day float64
		if err := json.Unmarshal(v, &day); err != nil {
			return md, fmt.Errorf("metadata %s: %w", MetaDayLong, err)
		}
		md.Day = int64(math.Trunc(day))
		delete(raw, MetaDayLong)
	}
	if v, ok := raw[MetaPlayTime]; ok {
		if err := json.Unmarshal(v, &md.PlayTime); err != nil {
			return md, fmt.Errorf("metadata %s: %w", MetaPlayTime, err)
		}
		delete(raw, MetaPlayTime)
	}
	if v, ok := raw[MetaClanName]; ok {
		if err := json.Unmarshal(v, &md.ClanName); err != nil {
			return md, fmt.Errorf("metadata %s: %w", MetaClanName, err)
		}
		md.HasClanName = true
		delete(raw, MetaClanName)
	}
	if v, ok := raw[MetaGold]; ok {
		var gold float64
		if err := json.Unmarshal(v, &gold); err != nil {
			return md, fmt.Errorf("metadata %s: %w", MetaGold, err)
		}
		md.Gold = int64(gold)
		delete(raw, MetaGold)
	}

	if len(raw) > 0 {
		md.Extra = raw
	}
	return md, nil
}

// Encode emits the metadata JSON block: the recognized keys from the typed
// fields plus every preserved pass-through entry.
func (md Metadata) Encode() ([]byte, error) {
	out := make(map[string]any, len(md.Extra)+6)
	out[MetaCharacterName] = md.CharacterName
	out[MetaMainHeroLevel] = md.MainHeroLevel
	out[MetaDayLong] = md.Day
	out[MetaPlayTime] = md.PlayTime
	if md.HasClanName {
		out[MetaClanName] = md.ClanName
	}
	out[MetaGold] = md.Gold
	for k, v := range md.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// SetClanName sets the optional clan name.
func (md *Metadata) SetClanName(name string) {
	md.ClanName = name
	md.HasClanName = true
}

// ClearClanName removes the optional clan name.
func (md *Metadata) ClearClanName() {
	md.ClanName = ""
	md.HasClanName = false
}
