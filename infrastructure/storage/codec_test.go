package storage

import (
	"rsvp-lab/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Entry_Keeps_Nanosecond_Timestamp(t *testing.T) {
	req := require.New(t)
	entry := domain.RespondentEntry{
		EventID:    "E1",
		FullName:   "Zoë Ångström",
		Email:      "Zoe@Example.com",
		Response:   domain.ResponseNo,
		RecordedAt: time.Date(2025, 11, 7, 10, 30, 0, 987654321, time.UTC),
	}
	data, err := EncodeEntry(entry)
	req.NoError(err)

	decoded, err := DecodeEntry(data)
	req.NoError(err)
	req.Equal(entry, decoded)
}

func Test_DecodeEntry_Rejects_Garbage(t *testing.T) {
	_, err := DecodeEntry([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
}

func Test_Counter_Codec(t *testing.T) {
	req := require.New(t)
	data, err := EncodeCounter(42)
	req.NoError(err)
	count, err := DecodeCounter(data)
	req.NoError(err)
	req.Equal(uint64(42), count)
}

func Test_Keys_Share_The_Event_Prefix(t *testing.T) {
	req := require.New(t)
	prefix := string(EventPrefix("E#1"))
	req.Equal("EVENT#E%231#", prefix)
	req.Equal(prefix+"RESPONDENT#a%40x.com", string(respondentKey("E#1", "a@x.com")))
	req.Equal(prefix+"RESPONSE#Yes", string(counterKey("E#1", domain.ResponseYes)))

}

func Test_ParseKey(t *testing.T) {
	req := require.New(t)

	parsed, ok := ParseKey(counterKey("E#1", domain.ResponseNo))
	req.True(ok)
	req.Equal(ParsedKey{EventID: "E#1", Kind: KindCounter, Component: "No"}, parsed)

	parsed, ok = ParseKey(respondentKey("E#1", "a#b@x.com"))
	req.True(ok)
	req.Equal(ParsedKey{EventID: "E#1", Kind: KindRespondent, Component: "a#b@x.com"}, parsed)

	for _, key := range []string{"something:else", "EVENT#E1", "EVENT#E1#OTHER#x", "USER#E1#RESPONSE#Yes"} {
		_, ok = ParseKey([]byte(key))
		req.False(ok, key)
	}
}
