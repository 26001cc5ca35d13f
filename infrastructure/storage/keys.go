package storage

import (
	"net/url"
	"rsvp-lab/domain"
	"strings"
)

// Every key of an event shares the prefix "EVENT#{event_id}#" so that the
// ledger and the counters of one event are co-located:
//
//	EVENT#{event_id}#RESPONDENT#{email}   ledger entry
//	EVENT#{event_id}#RESPONSE#{Yes|No}    counter
//
// Components are query-escaped, a '#' inside an event id or an email can't
// leak into a neighbour range.
const (
	eventTag      = "EVENT#"
	respondentTag = "RESPONDENT#"
	responseTag   = "RESPONSE#"
)

func escape(component string) string {
	return url.QueryEscape(component)
}

// EventPrefix covers both the ledger and the counters of an event.
func EventPrefix(eventID string) []byte {
	return []byte(eventTag + escape(eventID) + "#")
}

// RespondentPrefix covers the ledger entries of an event only.
func RespondentPrefix(eventID string) []byte {
	return append(EventPrefix(eventID), respondentTag...)
}

func respondentKey(eventID, respondent string) []byte {
	return append(RespondentPrefix(eventID), escape(respondent)...)
}

func counterKey(eventID string, response domain.Response) []byte {
	return append(EventPrefix(eventID), (responseTag + string(response))...)
}

type KeyKind int

const (
	KindUnknown KeyKind = iota
	KindRespondent
	KindCounter
)

// ParsedKey is a key of the RSVP keyspace split back into its components.
type ParsedKey struct {
	EventID string
	Kind    KeyKind
	// Respondent email for KindRespondent, response for KindCounter.
	Component string
}

// ParseKey splits a raw key. ok is false for keys outside the RSVP layout.
func ParseKey(key []byte) (ParsedKey, bool) {
	parts := strings.SplitN(string(key), "#", 4)
	if len(parts) != 4 || parts[0]+"#" != eventTag {
		return ParsedKey{}, false
	}
	eventID, err := url.QueryUnescape(parts[1])
	if err != nil {
		return ParsedKey{}, false
	}
	parsed := ParsedKey{EventID: eventID}
	switch parts[2] + "#" {
	case respondentTag:
		respondent, err := url.QueryUnescape(parts[3])
		if err != nil {
			return ParsedKey{}, false
		}
		parsed.Kind, parsed.Component = KindRespondent, respondent
	case responseTag:
		parsed.Kind, parsed.Component = KindCounter, parts[3]
	default:
		return ParsedKey{}, false
	}
	return parsed, true
}
