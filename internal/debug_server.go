package internal

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"

	"procdesk/storage"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	ID         string
	CreatedAt  string
	Indexed    string
	Size       string
	Preview    string
}

type PageData struct {
	Collection  string
	Collections []string
	Query       string
	Items       []InspectRow
	Stats       map[string]any
}

// Searcher resolves a free-text query to process ids. The full-text index
// backs it in production; nil disables the search box.
type Searcher interface {
	Search(ctx context.Context, term string, limit int) ([]string, error)
}

var inspectCollections = []string{
	storage.CollectionProcesses,
	storage.CollectionVersions,
	storage.CollectionAudit,
	storage.CollectionChats,
	storage.CollectionFeedback,
	storage.CollectionUsers,
	storage.CollectionMeta,
}

// StartDebugServer exposes the store contents over HTTP for inspection
// during development. It reads through the store itself, so it shows
// whatever engine is actually serving, disk or memory. A non-empty `q`
// parameter switches the page to full-text results over processes.
func StartDebugServer(store *storage.Store, search Searcher, searchLimit, port int, endpoint string, log *slog.Logger) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		collection := r.URL.Query().Get("collection")
		if collection == "" {
			collection = storage.CollectionProcesses
		}
		query := r.URL.Query().Get("q")
		if query != "" && search != nil {
			collection = storage.CollectionProcesses
		}

		data := PageData{
			Collection:  collection,
			Collections: inspectCollections,
			Query:       query,
			Stats:       collectStats(store),
		}

		records, err := pageRecords(r.Context(), store, search, searchLimit, collection, query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, rec := range records {
			data.Items = append(data.Items, toInspectRow(rec))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Error("inspect template failed", "error", err)
		}
	})

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", port)
		log.Info("Debug inspector listening", "addr", addr, "endpoint", endpoint)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("debug server stopped", "error", err)
		}
	}()
}

// pageRecords picks the rows for one page render: full-text hits over
// processes when a query is set, the raw collection scan otherwise.
func pageRecords(ctx context.Context, store *storage.Store, search Searcher, searchLimit int, collection, query string) ([]storage.Record, error) {
	if query == "" || search == nil {
		return store.GetAll(collection)
	}

	ids, err := search.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	records := make([]storage.Record, 0, len(ids))
	for _, id := range ids {
		rec, ok, err := store.Get(storage.CollectionProcesses, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func collectStats(store *storage.Store) map[string]any {
	stats := map[string]any{
		"engine":     "badger",
		"goroutines": runtime.NumGoroutine(),
	}
	if store.Degraded() {
		stats["engine"] = "memory (degraded)"
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		stats["rss"] = fmt.Sprintf("%.1f MiB", float64(mem.RSS)/(1024*1024))
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		stats["cpu"] = fmt.Sprintf("%.1f%%", cpu)
	}
	return stats
}

func toInspectRow(rec storage.Record) InspectRow {
	indexed := ""
	for k, v := range rec.Indexed {
		indexed += fmt.Sprintf("%s=%s ", k, v)
	}
	preview := string(rec.Data)
	if len(preview) > 120 {
		preview = preview[:120] + "…"
	}
	return InspectRow{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Indexed:   indexed,
		Size:      fmt.Sprintf("%d B", len(rec.Data)),
		Preview:   preview,
	}
}
