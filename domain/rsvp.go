// Package domain contains the core concepts of the RSVP system.
// This file defines responses, ledger entries and counters.
// No storage, network, or transport logic should be added here.
package domain

import (
	"time"
)

// Response is the enumerated answer of a respondent.
type Response string

const (
	ResponseYes Response = "Yes"
	ResponseNo  Response = "No"
)

// Responses lists every valid Response, in counter order.
var Responses = []Response{ResponseYes, ResponseNo}

func (r Response) IsValid() bool {
	return r == ResponseYes || r == ResponseNo
}

func (r Response) String() string {
	return string(r)
}

// RespondentEntry is the ledger record of one RSVP.
// At most one entry exists per (EventID, RespondentKey) and it is never updated.
type RespondentEntry struct {
	EventID    string
	FullName   string
	Email      string
	Response   Response
	RecordedAt time.Time
}

// RespondentKey identifies the respondent within the event.
// The email is used as supplied, case included.
func (e RespondentEntry) RespondentKey() string {
	return e.Email
}

// Stats holds the running counters of an event.
type Stats struct {
	Yes uint64
	No  uint64
}

// StatsFromCounts builds Stats from a sparse map, missing responses count as zero.
func StatsFromCounts(counts map[Response]uint64) Stats {
	return Stats{
		Yes: counts[ResponseYes],
		No:  counts[ResponseNo],
	}
}
