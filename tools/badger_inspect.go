package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"rsvp-lab/infrastructure/storage"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

// Dumps the ledger and the counters of one event, or of every event when
// -event is empty. The database is opened read only.
func main() {
	dbPath := flag.String("db", "./data/rsvp", "Path to badger DB")
	eventID := flag.String("event", "", "Event to dump, every event when empty")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	prefix := []byte("EVENT#")
	if *eventID != "" {
		prefix = storage.EventPrefix(*eventID)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Name", "Email", "Response", "Recorded", "Count"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				parsed, ok := storage.ParseKey(item.Key())
				if !ok {
					table.Append([]string{key, "RAW", "", "", "", "", ""})
					return nil
				}
				if parsed.Kind == storage.KindCounter {
					count, err := storage.DecodeCounter(v)
					if err != nil {
						fmt.Printf("Error decoding counter %s: %v\n", key, err)
						return nil
					}
					table.Append([]string{key, "COUNTER", "", "", parsed.Component, "", strconv.FormatUint(count, 10)})
					return nil
				}
				entry, err := storage.DecodeEntry(v)
				if err != nil {
					fmt.Printf("Error decoding entry %s: %v\n", key, err)
					return nil
				}
				table.Append([]string{key, "RESPONDENT", entry.FullName, entry.Email,
					entry.Response.String(), entry.RecordedAt.Format(time.RFC3339), ""})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}
