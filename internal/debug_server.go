package internal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"message-ledger/proto/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
)

const (
	defaultInspectPrefix = "msg:"
	maxInspectRows       = 500
)

type InspectRow struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	EntityID  string `json:"entity_id"`
	Detail    string `json:"detail"`
	ExpiresAt string `json:"expires_at"`
}

type RowMapper func(key string, val []byte) InspectRow

// NewDebugRouter exposes read-only views over the ledger keyspace.
func NewDebugRouter(db *badger.DB, mapper RowMapper) http.Handler {
	if mapper == nil {
		mapper = LedgerMapper
	}
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/inspect", func(w http.ResponseWriter, req *http.Request) {
		prefix := req.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultInspectPrefix
		}
		rows, err := ScanPrefix(db, prefix, maxInspectRows, mapper)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"prefix": prefix,
			"items":  rows,
		})
	})
	return r
}

// StartDebugServer serves NewDebugRouter on port until the process exits.
func StartDebugServer(db *badger.DB, port int, log *slog.Logger) {
	address := fmt.Sprintf("0.0.0.0:%d", port)
	go func() {
		log.Debug("Starting debug server", "address", address)
		if err := http.ListenAndServe(address, NewDebugRouter(db, nil)); err != nil {
			log.Error("Debug server stopped", "error", err)
		}
	}()
}

// ScanPrefix maps at most limit entries under prefix, in key order.
func ScanPrefix(db *badger.DB, prefix string, limit int, mapper RowMapper) ([]InspectRow, error) {
	var rows []InspectRow
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if limit > 0 && len(rows) == limit {
				break
			}
			item := it.Item()
			err := item.Value(func(val []byte) error {
				row := mapper(string(item.Key()), val)
				row.ExpiresAt = expiry(item.ExpiresAt())
				rows = append(rows, row)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rows, err
}

// LedgerMapper decodes message records, inbox entries, the counter and users.
func LedgerMapper(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "-",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	switch {
	case strings.HasPrefix(key, "msg:"):
		var record storage.Message
		if err := record.Unmarshal(val); err != nil {
			row.Detail = "corrupted: " + err.Error()
			return row
		}
		row.Type = "MESSAGE"
		row.EntityID = strconv.FormatUint(record.Id, 10)
		row.Timestamp = time.Unix(int64(record.Timestamp), 0).UTC().Format(time.RFC3339)
		row.Detail = fmt.Sprintf("%s -> %s read=%t %q", record.Sender, record.Receiver, record.IsRead, record.Content)
	case strings.HasPrefix(key, "inbox:"):
		row.Type = "INBOX"
		if i := strings.LastIndex(key, ":"); i > 0 {
			if id, err := strconv.ParseUint(key[i+1:], 10, 64); err == nil {
				row.EntityID = strconv.FormatUint(id, 10)
			}
			row.Detail = "receiver: " + key[len("inbox:"):i]
		}
	case strings.HasPrefix(key, "meta:"):
		row.Type = "COUNTER"
		if len(val) == 8 {
			row.Detail = "value: " + strconv.FormatUint(binary.BigEndian.Uint64(val), 10)
		}
	case strings.HasPrefix(key, "user:"):
		var record storage.User
		if err := record.Unmarshal(val); err != nil {
			row.Detail = "corrupted: " + err.Error()
			return row
		}
		row.Type = "USER"
		row.EntityID = record.Id
		row.Timestamp = time.Unix(record.CreatedAt, 0).UTC().Format(time.RFC3339)
		row.Detail = fmt.Sprintf("%s roles=%s", record.Email, strings.Join(record.Roles, ","))
	}
	return row
}

func expiry(expiresAt uint64) string {
	if expiresAt == 0 {
		return "never"
	}
	return time.Unix(int64(expiresAt), 0).UTC().Format(time.RFC3339)
}
