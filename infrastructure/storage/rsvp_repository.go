//go:generate go run go.uber.org/mock/mockgen -source=rsvp_repository.go -destination=../../mocks/mock_rsvp_repository.go -package=mocks
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"rsvp-lab/domain"
	"rsvp-lab/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// TxnOutcome is the result of a conditional transaction that did not fail
// for infrastructure reasons.
type TxnOutcome int

const (
	TxnCommitted TxnOutcome = iota
	TxnPreconditionFailed
)

func (o TxnOutcome) String() string {
	switch o {
	case TxnCommitted:
		return "committed"
	case TxnPreconditionFailed:
		return "precondition_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

const (
	// DefaultMaxTxnBackoff caps the pause between two replays of a conflicting transaction.
	DefaultMaxTxnBackoff = 10 * time.Millisecond
	minTxnBackoff        = 250 * time.Microsecond
)

type IRSVPRepository interface {
	RecordRSVP(ctx context.Context, entry domain.RespondentEntry) (TxnOutcome, error)
	GetCounts(ctx context.Context, eventID string) (map[domain.Response]uint64, error)
	ListRespondents(ctx context.Context, eventID string, filter *domain.Response) ([]domain.RespondentEntry, error)
}

// RSVPRepository keeps the respondent ledger and the response counters in
// one Badger keyspace.
type RSVPRepository struct {
	db         *badger.DB
	log        *slog.Logger
	maxBackoff time.Duration
}

func NewRSVPRepository(db *badger.DB, log *slog.Logger, maxBackoff time.Duration) *RSVPRepository {
	if maxBackoff <= 0 {
		maxBackoff = DefaultMaxTxnBackoff
	}
	return &RSVPRepository{db: db, log: log, maxBackoff: maxBackoff}
}

var errPreconditionFailed = fmt.Errorf("respondent already recorded")

// RecordRSVP inserts the ledger entry if absent and increments the matching
// counter in the same Badger transaction.
// Badger detects read-write conflicts at commit time (badger.ErrConflict).
// The transaction is then replayed on a fresh snapshot after a jittered
// backoff: a replay that finds the entry reports TxnPreconditionFailed, a
// replay racing on the counter only commits with the up-to-date count.
// There is no attempt cap: ctx bounds the replays, and once it is done the
// call fails with a StoreError wrapping ErrTxnContention.
func (r *RSVPRepository) RecordRSVP(ctx context.Context, entry domain.RespondentEntry) (TxnOutcome, error) {
	entryKey := respondentKey(entry.EventID, entry.RespondentKey())
	countKey := counterKey(entry.EventID, entry.Response)
	value, err := EncodeEntry(entry)
	if err != nil {
		return 0, errors.NewStoreError("encode entry", err)
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			if attempt > 1 {
				err = fmt.Errorf("%w after %d attempts: %w", errors.ErrTxnContention, attempt-1, err)
			}
			return 0, errors.NewStoreError("record rsvp", err)
		}

		err = r.db.Update(func(txn *badger.Txn) error {
			// 1. Insert-if-absent on the ledger entry
			_, err := txn.Get(entryKey)
			switch {
			case err == nil:
				return errPreconditionFailed
			case !errors.Is(err, badger.ErrKeyNotFound):
				return err
			}
			if err = txn.Set(entryKey, value); err != nil {
				return err
			}

			// 2. Upsert-increment on the counter, absent means zero
			count, err := readCounter(txn, countKey)
			if err != nil {
				return err
			}
			counter, err := EncodeCounter(count + 1)
			if err != nil {
				return err
			}
			return txn.Set(countKey, counter)
		})

		switch {
		case err == nil:
			return TxnCommitted, nil
		case errors.Is(err, errPreconditionFailed):
			return TxnPreconditionFailed, nil
		case errors.Is(err, badger.ErrConflict):
			r.log.Debug("RSVP transaction conflict, replaying",
				"event_id", entry.EventID, "attempt", attempt)
			r.wait(ctx, attempt)
		default:
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%w: %w", ctxErr, err)
			}
			return 0, errors.NewStoreError("record rsvp", err)
		}
	}
}

// wait sleeps a random duration in [0, backoff), backoff doubling with each
// attempt up to maxBackoff. It returns early when ctx is done.
func (r *RSVPRepository) wait(ctx context.Context, attempt int) {
	backoff := r.maxBackoff
	if attempt < 16 {
		backoff = min(minTxnBackoff<<(attempt-1), r.maxBackoff)
	}
	timer := time.NewTimer(rand.N(backoff) + 1)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// GetCounts reads both counters of an event from a single snapshot.
// Responses without any RSVP are absent from the map.
func (r *RSVPRepository) GetCounts(ctx context.Context, eventID string) (map[domain.Response]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("get counts", err)
	}
	counts := make(map[domain.Response]uint64, len(domain.Responses))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, response := range domain.Responses {
			item, err := txn.Get(counterKey(eventID, response))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				count, err := DecodeCounter(val)
				counts[response] = count
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStoreError("get counts", err)
	}
	return counts, nil
}

// ListRespondents scans the ledger range of an event.
// A non-nil filter is applied while scanning, entries with another response
// never leave the storage layer. The result is never nil.
func (r *RSVPRepository) ListRespondents(ctx context.Context, eventID string, filter *domain.Response) ([]domain.RespondentEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("list respondents", err)
	}
	entries := make([]domain.RespondentEntry, 0)
	prefix := RespondentPrefix(eventID)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				entry, err := DecodeEntry(val)
				if err != nil {
					return err
				}
				if filter == nil || entry.Response == *filter {
					entries = append(entries, entry)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStoreError("list respondents", err)
	}
	return entries, nil
}

func readCounter(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var count uint64
	err = item.Value(func(val []byte) error {
		count, err = DecodeCounter(val)
		return err
	})
	return count, err
}
