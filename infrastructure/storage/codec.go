package storage

import (
	"fmt"
	"rsvp-lab/domain"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	fieldEventID    = "event_id"
	fieldFullName   = "full_name"
	fieldEmail      = "email"
	fieldResponse   = "response"
	fieldRecordedAt = "recorded_at"
)

// EncodeEntry serializes a ledger entry as a protobuf Struct.
// recorded_at is kept as RFC3339Nano text, a float would lose the nanoseconds.
func EncodeEntry(entry domain.RespondentEntry) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		fieldEventID:    entry.EventID,
		fieldFullName:   entry.FullName,
		fieldEmail:      entry.Email,
		fieldResponse:   entry.Response.String(),
		fieldRecordedAt: entry.RecordedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("build entry struct: %w", err)
	}
	return proto.Marshal(s)
}

func DecodeEntry(data []byte) (domain.RespondentEntry, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return domain.RespondentEntry{}, fmt.Errorf("unmarshal entry: %w", err)
	}
	fields := s.GetFields()
	recordedAt, err := time.Parse(time.RFC3339Nano, fields[fieldRecordedAt].GetStringValue())
	if err != nil {
		return domain.RespondentEntry{}, fmt.Errorf("parse recorded_at: %w", err)
	}
	return domain.RespondentEntry{
		EventID:    fields[fieldEventID].GetStringValue(),
		FullName:   fields[fieldFullName].GetStringValue(),
		Email:      fields[fieldEmail].GetStringValue(),
		Response:   domain.Response(fields[fieldResponse].GetStringValue()),
		RecordedAt: recordedAt.UTC(),
	}, nil
}

func EncodeCounter(count uint64) ([]byte, error) {
	return proto.Marshal(wrapperspb.UInt64(count))
}

func DecodeCounter(data []byte) (uint64, error) {
	var v wrapperspb.UInt64Value
	if err := proto.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("unmarshal counter: %w", err)
	}
	return v.GetValue(), nil
}
