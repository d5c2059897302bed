package dispatch

import (
	"context"
	"fmt"

	"github.com/lonelyhost/panel/internal/domain"
)

// CreateBackup records a new backup for the server. Backup ids are generated
// sequentially from the current count; the count read and the insert share one
// critical section, so concurrent creates cannot generate the same id.
func (d *Dispatcher) CreateBackup(ctx context.Context, serverID string) (string, error) {
	srv, ok := d.store.Servers.Get(serverID)
	if !ok {
		return "", domain.ErrNotFound("server", serverID)
	}

	backup := d.store.Backups.Append(func(n int) domain.Backup {
		return domain.Backup{
			ID:       fmt.Sprintf("backup%d", n+1),
			ServerID: srv.ID,
			Name:     fmt.Sprintf("Backup of %s", srv.Name),
			Date:     d.now().UTC(),
		}
	})

	if err := d.notify(ctx, fmt.Sprintf("failed to create backup for server %s", srv.Name),
		fmt.Sprintf("Creating backup for server %s", srv.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Backup created for server %s!", srv.Name)
	d.announce.Announce(ctx, "backup.create", msg)
	d.logger.Info("backup created", "backup_id", backup.ID, "server_id", serverID)
	return msg, nil
}

// RestoreBackup fires the restore notification for an existing backup.
// Server state is intentionally untouched: restore is a pure notification in
// the current design.
func (d *Dispatcher) RestoreBackup(ctx context.Context, id string) (string, error) {
	backup, ok := d.store.Backups.Get(id)
	if !ok {
		return "", domain.ErrNotFound("backup", id)
	}

	if err := d.notify(ctx, fmt.Sprintf("failed to restore backup %s", backup.Name),
		fmt.Sprintf("Restoring backup %s", backup.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Backup %s restored!", backup.Name)
	d.announce.Announce(ctx, "backup.restore", msg)
	d.logger.Info("backup restored", "backup_id", id)
	return msg, nil
}
