// Package ledger keeps the economy audit trail. Every balance-changing
// action (economy add/remove, addon install, theme purchase) appends exactly
// one entry. The in-memory log is authoritative; a Sink can mirror entries
// to durable storage best-effort.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one audit record for a balance mutation.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction types recorded by the dispatcher.
const (
	TxFundsAdded    = "funds_added"
	TxFundsRemoved  = "funds_removed"
	TxAddonInstall  = "addon_install"
	TxThemePurchase = "theme_purchase"
)

// Sink mirrors entries to an external store.
type Sink interface {
	Append(ctx context.Context, e Entry) error
}

// Log is the append-only audit log.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	sink    Sink
	logger  *slog.Logger
	now     func() time.Time
}

// NewLog creates an audit log. sink may be nil.
func NewLog(sink Sink, logger *slog.Logger) *Log {
	return &Log{sink: sink, logger: logger, now: time.Now}
}

// Append records one entry. The sink write is best-effort: a sink failure is
// logged and the in-memory append stands.
func (l *Log) Append(ctx context.Context, accountID, txType string, amount int64, message string) Entry {
	e := Entry{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      txType,
		Amount:    amount,
		Message:   message,
		CreatedAt: l.now().UTC(),
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	if l.sink != nil {
		if err := l.sink.Append(ctx, e); err != nil {
			l.logger.Warn("audit sink append failed", "entry_id", e.ID, "error", err)
		}
	}
	return e
}

// List returns a copy of all entries, oldest first.
func (l *Log) List() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
