package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/ledger"
	"github.com/lonelyhost/panel/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records side-effect commands and can be told to fail.
type fakeRunner struct {
	commands []string
	fail     bool
}

func (f *fakeRunner) Echo(_ context.Context, message string) error {
	f.commands = append(f.commands, message)
	if f.fail {
		return errors.New("exec failed")
	}
	return nil
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeRunner) {
	t.Helper()
	st := store.New()
	store.Seed(st, "test-hash")
	runner := &fakeRunner{}
	audit := ledger.NewLog(nil, noopLogger())
	d := New(st, runner, audit, NopAnnouncer{}, noopLogger())
	d.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return d, runner
}

// --- Server lifecycle ---

func TestStartServer(t *testing.T) {
	t.Run("seeded Minecraft server starts", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		msg, err := d.StartServer(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Server Minecraft Server started!", msg)

		srv, ok := d.store.Servers.Get("1")
		require.True(t, ok)
		assert.Equal(t, domain.StatusOnline, srv.Status)
		assert.Equal(t, []string{"Starting server Minecraft Server"}, runner.commands)
	})

	t.Run("unknown id returns NotFound without mutation", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		before := d.store.Servers.List()

		_, err := d.StartServer(context.Background(), "999")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, 404, appErr.Status)

		assert.Equal(t, before, d.store.Servers.List())
		assert.Empty(t, runner.commands)
	})

	t.Run("side effect failure keeps the mutation", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		runner.fail = true

		_, err := d.StartServer(context.Background(), "1")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SIDE_EFFECT_FAILED", appErr.Code)
		assert.Equal(t, 500, appErr.Status)

		srv, _ := d.store.Servers.Get("1")
		assert.Equal(t, domain.StatusOnline, srv.Status, "mutation is not rolled back")
	})
}

func TestStartStopTerminalStates(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		t.Run("start then stop leaves offline "+id, func(t *testing.T) {
			_, err := d.StartServer(ctx, id)
			require.NoError(t, err)
			_, err = d.StopServer(ctx, id)
			require.NoError(t, err)
			srv, _ := d.store.Servers.Get(id)
			assert.Equal(t, domain.StatusOffline, srv.Status)
		})

		t.Run("stop then start leaves online "+id, func(t *testing.T) {
			_, err := d.StopServer(ctx, id)
			require.NoError(t, err)
			_, err = d.StartServer(ctx, id)
			require.NoError(t, err)
			srv, _ := d.store.Servers.Get(id)
			assert.Equal(t, domain.StatusOnline, srv.Status)
		})
	}
}

func TestChangeVersion(t *testing.T) {
	t.Run("overwrites version verbatim", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		msg, err := d.ChangeVersion(context.Background(), "1", "1.21-pre4")
		require.NoError(t, err)
		assert.Equal(t, "Server Minecraft Server version changed to 1.21-pre4!", msg)

		srv, _ := d.store.Servers.Get("1")
		assert.Equal(t, "1.21-pre4", srv.Version)
	})

	t.Run("unknown server", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.ChangeVersion(context.Background(), "nope", "2.0")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestAdjustResources(t *testing.T) {
	t.Run("overwrites wholesale", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		msg, err := d.AdjustResources(context.Background(), "2", 90, 4096)
		require.NoError(t, err)
		assert.Equal(t, "Server ARK Server resources adjusted to CPU 90%, RAM 4096MB!", msg)

		srv, _ := d.store.Servers.Get("2")
		assert.Equal(t, domain.Resources{CPU: 90, RAM: 4096}, srv.Resources)
	})

	t.Run("negative values are accepted", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.AdjustResources(context.Background(), "1", -10, -512)
		require.NoError(t, err)

		srv, _ := d.store.Servers.Get("1")
		assert.Equal(t, domain.Resources{CPU: -10, RAM: -512}, srv.Resources)
	})
}

// --- Backups ---

func TestCreateBackup(t *testing.T) {
	t.Run("appends exactly one backup with generated id", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		before := d.store.Backups.Len()

		msg, err := d.CreateBackup(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Backup created for server Minecraft Server!", msg)
		assert.Equal(t, before+1, d.store.Backups.Len())

		backup, ok := d.store.Backups.Get("backup1")
		require.True(t, ok)
		assert.Equal(t, "1", backup.ServerID)
		assert.Equal(t, "Backup of Minecraft Server", backup.Name)
		assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), backup.Date)
		assert.Equal(t, []string{"Creating backup for server Minecraft Server"}, runner.commands)
	})

	t.Run("generated ids stay unique across servers", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		seen := map[string]bool{}
		for _, serverID := range []string{"1", "2", "3", "1"} {
			_, err := d.CreateBackup(context.Background(), serverID)
			require.NoError(t, err)
		}
		for _, b := range d.store.Backups.List() {
			assert.False(t, seen[b.ID], "duplicate backup id %s", b.ID)
			seen[b.ID] = true
		}
		assert.Len(t, seen, 4)
	})

	t.Run("parallel creates never lose a backup", func(t *testing.T) {
		d, _ := newTestDispatcher(t)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := d.CreateBackup(context.Background(), "1")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, d.store.Backups.Len())
	})

	t.Run("unknown server creates nothing", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.CreateBackup(context.Background(), "missing")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, 0, d.store.Backups.Len())
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Run("restore is a pure notification", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		_, err := d.CreateBackup(context.Background(), "1")
		require.NoError(t, err)
		_, err = d.ChangeVersion(context.Background(), "1", "9.9.9")
		require.NoError(t, err)

		msg, err := d.RestoreBackup(context.Background(), "backup1")
		require.NoError(t, err)
		assert.Equal(t, "Backup Backup of Minecraft Server restored!", msg)

		// Server fields are untouched by restore.
		srv, _ := d.store.Servers.Get("1")
		assert.Equal(t, "9.9.9", srv.Version)
		assert.Contains(t, runner.commands, "Restoring backup Backup of Minecraft Server")
	})

	t.Run("unknown backup", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.RestoreBackup(context.Background(), "backup42")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

// --- Catalog purchases ---

func TestInstallAddon(t *testing.T) {
	t.Run("debits once and marks purchase", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		msg, err := d.InstallAddon(context.Background(), "user1", "addon1")
		require.NoError(t, err)
		assert.Equal(t, "Addon WorldGuard installed!", msg)

		user, _ := d.store.Users.Get("user1")
		assert.Equal(t, int64(460), user.Balance)
		assert.True(t, user.HasAddon("addon1"))
		assert.Equal(t, []string{"Installing addon WorldGuard"}, runner.commands)

		entries := d.audit.List()
		require.Len(t, entries, 1)
		assert.Equal(t, ledger.TxAddonInstall, entries[0].Type)
		assert.Equal(t, int64(-40), entries[0].Amount)
	})

	t.Run("insufficient balance leaves user untouched", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		d.store.Users.Update("user1", func(u *domain.User) { u.Balance = 10 })

		_, err := d.InstallAddon(context.Background(), "user1", "addon1")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", appErr.Code)
		assert.Equal(t, 400, appErr.Status)

		user, _ := d.store.Users.Get("user1")
		assert.Equal(t, int64(10), user.Balance)
		assert.False(t, user.HasAddon("addon1"))
		assert.Empty(t, d.audit.List())
	})

	t.Run("repeat purchase re-debits but cannot duplicate the set entry", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.InstallAddon(context.Background(), "user1", "addon2")
		require.NoError(t, err)
		_, err = d.InstallAddon(context.Background(), "user1", "addon2")
		require.NoError(t, err)

		user, _ := d.store.Users.Get("user1")
		assert.Equal(t, int64(450), user.Balance)
		assert.Equal(t, []string{"addon2"}, user.AddonIDs())
	})

	t.Run("unknown addon", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.InstallAddon(context.Background(), "user1", "addon99")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.InstallAddon(context.Background(), "ghost", "addon1")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestPurchaseTheme(t *testing.T) {
	t.Run("debits and marks purchase without a shell call", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		msg, err := d.PurchaseTheme(context.Background(), "user1", "theme2")
		require.NoError(t, err)
		assert.Equal(t, "Theme Ocean Blue purchased!", msg)

		user, _ := d.store.Users.Get("user1")
		assert.Equal(t, int64(480), user.Balance)
		assert.True(t, user.HasTheme("theme2"))
		assert.Empty(t, runner.commands)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		d.store.Users.Update("user1", func(u *domain.User) { u.Balance = 5 })

		_, err := d.PurchaseTheme(context.Background(), "user1", "theme1")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", appErr.Code)

		user, _ := d.store.Users.Get("user1")
		assert.Equal(t, int64(5), user.Balance)
		assert.Empty(t, user.ThemeIDs())
	})
}

// --- Economy ---

func TestEconomy(t *testing.T) {
	t.Run("add funds", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		msg, err := d.AddFunds(context.Background(), "player1", 25)
		require.NoError(t, err)
		assert.Equal(t, "Added $25 to Steve's balance.", msg)

		p, _ := d.store.Players.Get("player1")
		assert.Equal(t, int64(125), p.Balance)
	})

	t.Run("remove funds may drive the balance negative", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		msg, err := d.RemoveFunds(context.Background(), "player1", 150)
		require.NoError(t, err)
		assert.Equal(t, "Removed $150 from Steve's balance.", msg)

		p, _ := d.store.Players.Get("player1")
		assert.Equal(t, int64(-50), p.Balance, "no floor is enforced")
	})

	t.Run("audit trail records both directions", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		_, err := d.AddFunds(context.Background(), "player2", 10)
		require.NoError(t, err)
		_, err = d.RemoveFunds(context.Background(), "player2", 30)
		require.NoError(t, err)

		entries := d.audit.List()
		require.Len(t, entries, 2)
		assert.Equal(t, ledger.TxFundsAdded, entries[0].Type)
		assert.Equal(t, int64(10), entries[0].Amount)
		assert.Equal(t, ledger.TxFundsRemoved, entries[1].Type)
		assert.Equal(t, int64(-30), entries[1].Amount)
	})

	t.Run("unknown player leaves everything unchanged", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		before := d.store.Players.List()

		_, err := d.AddFunds(context.Background(), "player9", 10)
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)

		assert.Equal(t, before, d.store.Players.List())
		assert.Empty(t, d.audit.List())
	})
}

// --- Moderation ---

func TestKickAndBan(t *testing.T) {
	t.Run("kick fires notification only", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		msg, err := d.KickPlayer(context.Background(), "player1")
		require.NoError(t, err)
		assert.Equal(t, "Player Steve kicked!", msg)
		assert.Equal(t, []string{"Kicking player Steve"}, runner.commands)
	})

	t.Run("ban does not change player status", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		msg, err := d.BanPlayer(context.Background(), "player1")
		require.NoError(t, err)
		assert.Equal(t, "Player Steve banned!", msg)

		p, _ := d.store.Players.Get("player1")
		assert.Equal(t, domain.StatusOnline, p.Status)
	})

	t.Run("unknown player", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		_, err := d.KickPlayer(context.Background(), "nobody")
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Empty(t, runner.commands)
	})
}

// --- Maintenance ---

func TestMaintenance(t *testing.T) {
	t.Run("manage database", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		msg, err := d.ManageDatabase(context.Background(), "db1")
		require.NoError(t, err)
		assert.Equal(t, "Database Minecraft DB managed!", msg)
		assert.Equal(t, []string{"Managing database Minecraft DB"}, runner.commands)
	})

	t.Run("run task", func(t *testing.T) {
		d, runner := newTestDispatcher(t)
		msg, err := d.RunTask(context.Background(), "task2")
		require.NoError(t, err)
		assert.Equal(t, "Task Weekly Restart executed!", msg)
		assert.Equal(t, []string{"Running task Weekly Restart"}, runner.commands)
	})

	t.Run("unknown ids", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		for _, call := range []func() (string, error){
			func() (string, error) { return d.ManageDatabase(context.Background(), "db9") },
			func() (string, error) { return d.RunTask(context.Background(), "task9") },
		} {
			_, err := call()
			var appErr *domain.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "NOT_FOUND", appErr.Code)
		}
	})
}
