package internal

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"rsvp-lab/infrastructure/storage"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

const (
	defaultInspectPrefix = "EVENT#"
	maxInspectRows       = 1000
)

type InspectRow struct {
	Key     string
	Kind    string
	EventID string
	Detail  string
}

type RowMapper func(key string, val []byte) InspectRow

type PageData struct {
	Prefix string
	Items  []InspectRow
}

// InspectHandler renders the keys of the RSVP store under a prefix.
// The scan runs in a read-only transaction and stops after maxInspectRows.
func InspectHandler(db *badger.DB, mapper RowMapper, log *slog.Logger) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	if mapper == nil {
		mapper = RSVPMapper
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultInspectPrefix
		}
		data := PageData{Prefix: prefix}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)) && len(data.Items) < maxInspectRows; it.Next() {
				item := it.Item()
				err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Error("Inspector scan failed", "prefix", prefix, "err", err)
			http.Error(w, "scan failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
}

// StartDebugServer serves the inspector in the background. The returned server
// must be shut down by the caller.
func StartDebugServer(db *badger.DB, port int, endpoint string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(endpoint, InspectHandler(db, RSVPMapper, log))
	server := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Debug inspector stopped", "err", err)
		}
	}()
	return server
}

// RSVPMapper decodes ledger entries and counters, anything else is shown raw.
func RSVPMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:    key,
		Kind:   "RAW",
		Detail: "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	parsed, ok := storage.ParseKey([]byte(key))
	if !ok {
		return row
	}
	row.EventID = parsed.EventID

	switch parsed.Kind {
	case storage.KindRespondent:
		entry, err := storage.DecodeEntry(val)
		if err != nil {
			row.Detail = "Error: " + err.Error()
			return row
		}
		row.Kind = "RESPONDENT"
		row.Detail = fmt.Sprintf("%s <%s> %s at %s",
			entry.FullName, entry.Email, entry.Response, entry.RecordedAt.Format(time.RFC3339))
	case storage.KindCounter:
		count, err := storage.DecodeCounter(val)
		if err != nil {
			row.Detail = "Error: " + err.Error()
			return row
		}
		row.Kind = "COUNTER"
		row.Detail = fmt.Sprintf("%s = %d", parsed.Component, count)
	}
	return row
}
