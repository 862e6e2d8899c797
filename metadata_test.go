package twsave

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	raw := []byte(`{
		"CharacterName": "Ragnar",
		"MainHeroLevel": 14,
		"DayLong": 127.83,
		"PlayTime": 36000.5,
		"ClanName": "dey Maroc",
		"Gold": 25000,
		"LauncherBuild": "1.2.3",
		"IronmanMode": true
	}`)

	md, err := ParseMetadata(raw)
	require.NoError(t, err)

	assert.Equal(t, "Ragnar", md.CharacterName)
	assert.Equal(t, 14, md.MainHeroLevel)
	assert.Equal(t, int64(127), md.Day, "DayLong is stored truncated")
	assert.Equal(t, 36000.5, md.PlayTime)
	assert.True(t, md.HasClanName)
	assert.Equal(t, "dey Maroc", md.ClanName)
	assert.Equal(t, int64(25000), md.Gold)

	// unknown keys survive untouched
	require.Len(t, md.Extra, 2)
	assert.JSONEq(t, `"1.2.3"`, string(md.Extra["LauncherBuild"]))
	assert.JSONEq(t, `true`, string(md.Extra["IronmanMode"]))
}

func TestParseMetadataEmpty(t *testing.T) {
	md, err := ParseMetadata([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, md.CharacterName)
	assert.Empty(t, md.Extra)
	assert.False(t, md.HasClanName)

	md, err = ParseMetadata(nil)
	require.NoError(t, err)
	assert.Empty(t, md.CharacterName)
}

func TestParseMetadataRejectsGarbage(t *testing.T) {
	_, err := ParseMetadata([]byte(`not json`))
	assert.Error(t, err)
}

func TestMetadataRoundTrip(t *testing.T) {
	md := Metadata{
		CharacterName: "Svana",
		MainHeroLevel: 7,
		Day:           42,
		PlayTime:      1234.5,
		Gold:          999,
		Extra: map[string]json.RawMessage{
			"ModsHash": json.RawMessage(`"abcdef"`),
		},
	}
	md.SetClanName("Skolderbrotva")

	data, err := md.Encode()
	require.NoError(t, err)

	back, err := ParseMetadata(data)
	require.NoError(t, err)
	assert.Equal(t, md, back)
}

func TestMetadataClanNameOptional(t *testing.T) {
	md := Metadata{CharacterName: "Nameless"}
	data, err := md.Encode()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	_, hasClan := m[MetaClanName]
	assert.False(t, hasClan, "ClanName must not be emitted when unset")

	back, err := ParseMetadata(data)
	require.NoError(t, err)
	assert.False(t, back.HasClanName)
}
