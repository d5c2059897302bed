// Package dispatch implements the panel's named actions. Every action has the
// same shape: resolve the referenced entities, check the domain precondition,
// apply exactly one state mutation, fire the informational side effect, and
// return a human-readable result message. A failed side effect is reported but
// never undoes the mutation that preceded it.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/ledger"
	"github.com/lonelyhost/panel/internal/shell"
	"github.com/lonelyhost/panel/internal/store"
)

// Dispatcher executes panel actions against the shared entity store.
type Dispatcher struct {
	store    *store.Store
	shell    shell.Runner
	audit    *ledger.Log
	announce Announcer
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a dispatcher. announce may be a NopAnnouncer.
func New(st *store.Store, sh shell.Runner, audit *ledger.Log, announce Announcer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    st,
		shell:    sh,
		audit:    audit,
		announce: announce,
		logger:   logger,
		now:      time.Now,
	}
}

// Store exposes the underlying entity store so the dashboard and REPL operate
// on the identical instance.
func (d *Dispatcher) Store() *store.Store { return d.store }

// Audit exposes the audit log for dashboard rendering.
func (d *Dispatcher) Audit() *ledger.Log { return d.audit }

// notify runs the informational shell command. The caller has already applied
// its mutation; on failure the mutation stands and the caller surfaces a
// SIDE_EFFECT_FAILED error instead of the success message.
func (d *Dispatcher) notify(ctx context.Context, detail, command string) error {
	if err := d.shell.Echo(ctx, command); err != nil {
		d.logger.Error("side effect failed", "detail", detail, "error", err)
		return domain.ErrSideEffectFailed(detail, err)
	}
	return nil
}
