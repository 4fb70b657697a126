package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"procdesk/storage"
)

type config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
}

func main() {
	var cfg config
	if err := envconfig.Process("procdesk", &cfg); err != nil {
		log.Fatal("Error while reading environment: ", err)
	}

	dbPath := flag.String("db", cfg.BadgerFilepath, "Path to badger DB")
	collection := flag.String("collection", storage.CollectionProcesses, "Collection to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	color.Bold.Printf("Collection %q at %s\n\n", *collection, *dbPath)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Created At", "Indexed", "Size", "Data"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(*collection + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(v []byte) error {
				var rec storage.Record
				if err := json.Unmarshal(v, &rec); err != nil {
					// Log and keep scanning instead of aborting the dump.
					color.Red.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}

				indexed := ""
				for k, val := range rec.Indexed {
					indexed += fmt.Sprintf("%s=%s ", k, val)
				}

				data := string(rec.Data)
				if len(data) > 80 {
					data = data[:80] + "…"
				}

				table.Append([]string{
					rec.ID,
					rec.CreatedAt.Format(time.RFC3339),
					indexed,
					fmt.Sprintf("%d B", len(rec.Data)),
					data,
				})
				rows++
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
	if rows == 0 {
		color.Yellow.Println("No records found.")
	} else {
		color.Green.Printf("\n%d record(s)\n", rows)
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// A dirty value log cannot be truncated read-only; open once in
		// write mode to repair, then reopen read-only.
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
