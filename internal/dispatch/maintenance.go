package dispatch

import (
	"context"
	"fmt"

	"github.com/lonelyhost/panel/internal/domain"
)

// ManageDatabase fires the management notification for a database. There is
// no further state change; the notification is the whole effect.
func (d *Dispatcher) ManageDatabase(ctx context.Context, id string) (string, error) {
	db, ok := d.store.Databases.Get(id)
	if !ok {
		return "", domain.ErrNotFound("database", id)
	}

	if err := d.notify(ctx, fmt.Sprintf("failed to manage database %s", db.Name),
		fmt.Sprintf("Managing database %s", db.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Database %s managed!", db.Name)
	d.announce.Announce(ctx, "database.manage", msg)
	d.logger.Info("database managed", "database_id", id)
	return msg, nil
}

// RunTask fires the execution notification for a task. The task's cron
// schedule is descriptive only; runs happen on demand.
func (d *Dispatcher) RunTask(ctx context.Context, id string) (string, error) {
	task, ok := d.store.Tasks.Get(id)
	if !ok {
		return "", domain.ErrNotFound("task", id)
	}

	if err := d.notify(ctx, fmt.Sprintf("failed to run task %s", task.Name),
		fmt.Sprintf("Running task %s", task.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Task %s executed!", task.Name)
	d.announce.Announce(ctx, "task.run", msg)
	d.logger.Info("task executed", "task_id", id)
	return msg, nil
}
