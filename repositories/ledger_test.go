package repositories

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"message-ledger/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func send(t *testing.T, repo *LedgerRepository, sender, receiver domain.Identity, content string, policy domain.TTLPolicy) domain.Message {
	t.Helper()
	var message domain.Message
	err := repo.Update(func(tx LedgerTx) error {
		id, err := tx.NextID()
		if err != nil {
			return err
		}
		message = domain.NewMessage(id, sender, receiver, content, time.Now())
		if err = tx.Put(id, message); err != nil {
			return err
		}
		if err = tx.IndexInbox(message); err != nil {
			return err
		}
		return tx.ExtendTTL(message, policy, time.Now())
	})
	require.NoError(t, err)
	return message
}

func TestLedger_Counter_Is_Dense_From_One(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())

	err := repo.View(func(tx LedgerTx) error {
		count, err := tx.Count()
		req.Zero(count)
		return err
	})
	req.NoError(err)

	for want := uint64(1); want <= 5; want++ {
		message := send(t, repo, "alice", "bob", "hi", domain.DefaultTTLPolicy())
		req.Equal(want, message.ID)
	}

	err = repo.View(func(tx LedgerTx) error {
		count, err := tx.Count()
		req.Equal(uint64(5), count)
		return err
	})
	req.NoError(err)
}

func TestLedger_Put_And_Get(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	stored := send(t, repo, "alice", "bob", "this message will self destruct in 5 seconds", domain.DefaultTTLPolicy())

	err := repo.View(func(tx LedgerTx) error {
		fetched, found, err := tx.Get(stored.ID)
		req.True(found)
		req.Equal(stored, fetched)

		_, found, _ = tx.Get(stored.ID + 1)
		req.False(found)
		return err
	})
	req.NoError(err)
}

func TestLedger_Aborted_Update_Discards_Every_Write(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	boom := fmt.Errorf("boom")

	err := repo.Update(func(tx LedgerTx) error {
		id, err := tx.NextID()
		if err != nil {
			return err
		}
		if err = tx.Put(id, domain.NewMessage(id, "alice", "bob", "lost", time.Now())); err != nil {
			return err
		}
		return boom
	})
	req.ErrorIs(err, boom)

	err = repo.View(func(tx LedgerTx) error {
		count, err := tx.Count()
		req.Zero(count)
		_, found, _ := tx.Get(1)
		req.False(found)
		return err
	})
	req.NoError(err)

	// The id is not burnt by the aborted call.
	req.Equal(uint64(1), send(t, repo, "alice", "bob", "kept", domain.DefaultTTLPolicy()).ID)
}

func TestLedger_View_Is_Read_Only(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())

	err := repo.View(func(tx LedgerTx) error {
		_, err := tx.NextID()
		return err
	})
	req.ErrorIs(err, badger.ErrReadOnlyTxn)
}

func TestLedger_SetRead_Overwrites(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	stored := send(t, repo, "alice", "bob", "hi", domain.DefaultTTLPolicy())

	err := repo.Update(func(tx LedgerTx) error {
		return tx.SetRead(stored.ID, stored.MarkRead())
	})
	req.NoError(err)

	err = repo.View(func(tx LedgerTx) error {
		fetched, _, err := tx.Get(stored.ID)
		req.True(fetched.IsRead)
		req.Equal(stored.Content, fetched.Content)
		return err
	})
	req.NoError(err)
}

func TestLedger_ExtendTTL_Sets_Expiry(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repo := NewLedgerRepository(db, slog.Default())
	policy := domain.TTLPolicy{Threshold: time.Hour, ExtendTo: 2 * time.Hour}

	before := time.Now()
	stored := send(t, repo, "alice", "bob", "hi", policy)

	err := db.View(func(txn *badger.Txn) error {
		for _, key := range [][]byte{messageKey(stored.ID), inboxKey("bob", stored.ID)} {
			item, err := txn.Get(key)
			if err != nil {
				return err
			}
			expiresAt := time.Unix(int64(item.ExpiresAt()), 0)
			req.WithinDuration(before.Add(policy.ExtendTo), expiresAt, 5*time.Second)
		}
		counter, err := txn.Get([]byte(counterKey))
		if err != nil {
			return err
		}
		req.Zero(counter.ExpiresAt(), "the counter never expires")
		return nil
	})
	req.NoError(err)
}

func TestLedger_ExtendTTL_Skips_Records_Above_Threshold(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repo := NewLedgerRepository(db, slog.Default())
	long := domain.TTLPolicy{Threshold: time.Hour, ExtendTo: 48 * time.Hour}
	stored := send(t, repo, "alice", "bob", "hi", long)

	expiry := func() uint64 {
		var expiresAt uint64
		req.NoError(db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(messageKey(stored.ID))
			if err != nil {
				return err
			}
			expiresAt = item.ExpiresAt()
			return nil
		}))
		return expiresAt
	}
	first := expiry()

	// 48h remain, well above a one hour threshold: nothing is rewritten.
	short := domain.TTLPolicy{Threshold: time.Hour, ExtendTo: 2 * time.Hour}
	req.NoError(repo.Update(func(tx LedgerTx) error {
		return tx.ExtendTTL(stored, short, time.Now())
	}))
	req.Equal(first, expiry())
}

func expiresAt(t *testing.T, db *badger.DB, key []byte) uint64 {
	t.Helper()
	var expiresAt uint64
	require.NoError(t, db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		expiresAt = item.ExpiresAt()
		return nil
	}))
	return expiresAt
}

func TestLedger_ExtendTTL_Decides_At_Given_Time(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repo := NewLedgerRepository(db, slog.Default())
	stored := send(t, repo, "alice", "bob", "hi", domain.TTLPolicy{Threshold: time.Hour, ExtendTo: 48 * time.Hour})
	first := expiresAt(t, db, messageKey(stored.ID))

	policy := domain.TTLPolicy{Threshold: time.Hour, ExtendTo: 72 * time.Hour}
	// Seen from the wall clock 48h remain; seen from this instant only 30 minutes do.
	later := time.Now().Add(47*time.Hour + 30*time.Minute)
	req.NoError(repo.Update(func(tx LedgerTx) error {
		return tx.ExtendTTL(stored, policy, later)
	}))

	req.Greater(expiresAt(t, db, messageKey(stored.ID)), first)
	req.Greater(expiresAt(t, db, inboxKey("bob", stored.ID)), first)
}

func TestLedger_SetRead_Expiry_Restored_By_ExtendTTL(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repo := NewLedgerRepository(db, slog.Default())
	policy := domain.TTLPolicy{Threshold: time.Hour, ExtendTo: 2 * time.Hour}
	stored := send(t, repo, "alice", "bob", "hi", policy)

	t.Run("should drop the expiry on a bare rewrite", func(t *testing.T) {
		req.NoError(repo.Update(func(tx LedgerTx) error {
			return tx.SetRead(stored.ID, stored.MarkRead())
		}))
		req.Zero(expiresAt(t, db, messageKey(stored.ID)))
	})

	t.Run("should bring the expiry back once extended", func(t *testing.T) {
		before := time.Now()
		req.NoError(repo.Update(func(tx LedgerTx) error {
			return tx.ExtendTTL(stored.MarkRead(), policy, before)
		}))
		expiry := time.Unix(int64(expiresAt(t, db, messageKey(stored.ID))), 0)
		req.WithinDuration(before.Add(policy.ExtendTo), expiry, 5*time.Second)
	})
}

func TestLedger_Expired_Record_Is_Gone(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	stored := send(t, repo, "alice", "bob", "ephemeral", domain.TTLPolicy{Threshold: time.Second, ExtendTo: time.Second})

	time.Sleep(2100 * time.Millisecond)

	err := repo.View(func(tx LedgerTx) error {
		_, found, err := tx.Get(stored.ID)
		req.False(found)
		messages, cursor, _ := tx.Inbox("bob", nil, 10)
		req.Empty(messages)
		req.Nil(cursor)
		count, _ := tx.Count()
		req.Equal(uint64(1), count)
		return err
	})
	req.NoError(err)
}

func TestLedger_Inbox_Pagination(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	policy := domain.DefaultTTLPolicy()

	for i := 1; i <= 10; i++ {
		send(t, repo, "alice", "bob", fmt.Sprintf("Message %d", i), policy)
		send(t, repo, "alice", "carol", fmt.Sprintf("Other %d", i), policy)
	}

	var pages [][]domain.Message
	var cursor *uint64
	for {
		var page []domain.Message
		var next *uint64
		err := repo.View(func(tx LedgerTx) error {
			var err error
			page, next, err = tx.Inbox("bob", cursor, 4)
			return err
		})
		req.NoError(err)
		pages = append(pages, page)
		if next == nil {
			break
		}
		cursor = next
	}

	req.Len(pages, 3)
	req.Len(pages[0], 4)
	req.Len(pages[1], 4)
	req.Len(pages[2], 2)
	req.Equal("Message 10", pages[0][0].Content)
	req.Equal("Message 7", pages[0][3].Content)
	req.Equal("Message 6", pages[1][0].Content)
	req.Equal("Message 1", pages[2][1].Content)
	for _, page := range pages {
		for _, message := range page {
			req.Equal(domain.Identity("bob"), message.Receiver)
		}
	}
}

func TestLedger_Inbox_Exact_Page_Has_No_Cursor(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	for i := 0; i < 3; i++ {
		send(t, repo, "alice", "bob", "hi", domain.DefaultTTLPolicy())
	}

	err := repo.View(func(tx LedgerTx) error {
		messages, cursor, err := tx.Inbox("bob", nil, 3)
		req.Len(messages, 3)
		req.Nil(cursor)
		return err
	})
	req.NoError(err)
}

func TestLedger_Inbox_Escapes_Identities(t *testing.T) {
	req := require.New(t)
	repo := NewLedgerRepository(openDB(t), slog.Default())
	send(t, repo, "alice", "bob", "for bob", domain.DefaultTTLPolicy())
	send(t, repo, "alice", "bob:admin", "for bob:admin", domain.DefaultTTLPolicy())

	err := repo.View(func(tx LedgerTx) error {
		messages, _, err := tx.Inbox("bob", nil, 10)
		req.Len(messages, 1)
		req.Equal("for bob", messages[0].Content)
		return err
	})
	req.NoError(err)
}
