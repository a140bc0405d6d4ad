// internal/storage/archive/snapshot.go
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/journal"
)

// SnapshotVersion is written into every snapshot
const SnapshotVersion = 1

const snapshotDir = "accounts"

// Snapshot is an account with all of its trades
type Snapshot struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	Account    core.Account `json:"account"`
	Trades     []core.Trade `json:"trades"`
}

// SnapshotPath returns where an account's snapshot is stored
func SnapshotPath(accountID string) string {
	return path.Join(snapshotDir, accountID+".json")
}

// Archiver moves account snapshots between a journal store and a Storage backend
type Archiver struct {
	store   journal.Store
	storage Storage
	now     func() time.Time
}

// NewArchiver creates an archiver
func NewArchiver(store journal.Store, storage Storage) *Archiver {
	return &Archiver{store: store, storage: storage, now: time.Now}
}

// Export writes the account and its trades and returns the snapshot path
func (a *Archiver) Export(ctx context.Context, accountID string) (string, error) {
	acc, err := a.store.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	trades, err := a.store.ListTrades(ctx, accountID, journal.ListFilter{})
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: a.now().UTC(),
		Account:    *acc,
		Trades:     trades,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	p := SnapshotPath(accountID)
	if err := a.storage.Write(ctx, p, data); err != nil {
		return "", core.WrapError(core.ErrStorageFailed, err)
	}
	return p, nil
}

// Import restores the snapshot stored at p. The account must not already exist.
func (a *Archiver) Import(ctx context.Context, p string) (core.Account, error) {
	data, err := a.storage.Read(ctx, p)
	if err != nil {
		return core.Account{}, err
	}
	return a.Restore(ctx, data)
}

// Restore loads an encoded snapshot into the store
func (a *Archiver) Restore(ctx context.Context, data []byte) (core.Account, error) {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return core.Account{}, err
	}

	acc, err := a.store.CreateAccount(ctx, snap.Account)
	if err != nil {
		return core.Account{}, err
	}
	for _, t := range snap.Trades {
		t.AccountID = acc.ID
		if _, err := a.store.AddTrade(ctx, t); err != nil {
			return core.Account{}, fmt.Errorf("restoring trade %s: %w", t.ID, err)
		}
	}

	restored, err := a.store.GetAccount(ctx, acc.ID)
	if err != nil {
		return core.Account{}, err
	}
	return *restored, nil
}

// List returns the stored snapshot paths
func (a *Archiver) List(ctx context.Context) ([]string, error) {
	return a.storage.List(ctx, snapshotDir+"/")
}

// DecodeSnapshot parses and checks an encoded snapshot
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, core.WrapError(core.ErrInvalidRequest, fmt.Errorf("decoding snapshot: %w", err))
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, core.Errorf(core.ErrInvalidRequest, "unsupported snapshot version %d", snap.Version)
	}
	if snap.Account.ID == "" {
		return Snapshot{}, core.WrapError(core.ErrInvalidRequest, errors.New("snapshot has no account id"))
	}
	return snap, nil
}
