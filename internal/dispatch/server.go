package dispatch

import (
	"context"
	"fmt"

	"github.com/lonelyhost/panel/internal/domain"
)

// StartServer flips the server online and fires the start notification.
func (d *Dispatcher) StartServer(ctx context.Context, id string) (string, error) {
	srv, ok := d.store.Servers.Get(id)
	if !ok {
		return "", domain.ErrNotFound("server", id)
	}

	d.store.Servers.Update(id, func(s *domain.Server) {
		s.Status = domain.StatusOnline
	})

	if err := d.notify(ctx, fmt.Sprintf("failed to start server %s", srv.Name),
		fmt.Sprintf("Starting server %s", srv.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Server %s started!", srv.Name)
	d.announce.Announce(ctx, "server.start", msg)
	d.logger.Info("server started", "server_id", id, "name", srv.Name)
	return msg, nil
}

// StopServer flips the server offline and fires the stop notification.
func (d *Dispatcher) StopServer(ctx context.Context, id string) (string, error) {
	srv, ok := d.store.Servers.Get(id)
	if !ok {
		return "", domain.ErrNotFound("server", id)
	}

	d.store.Servers.Update(id, func(s *domain.Server) {
		s.Status = domain.StatusOffline
	})

	if err := d.notify(ctx, fmt.Sprintf("failed to stop server %s", srv.Name),
		fmt.Sprintf("Stopping server %s", srv.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Server %s stopped!", srv.Name)
	d.announce.Announce(ctx, "server.stop", msg)
	d.logger.Info("server stopped", "server_id", id, "name", srv.Name)
	return msg, nil
}

// ChangeVersion overwrites the server's version string. The version format is
// not validated; whatever the operator supplies is recorded.
func (d *Dispatcher) ChangeVersion(ctx context.Context, id, version string) (string, error) {
	srv, ok := d.store.Servers.Get(id)
	if !ok {
		return "", domain.ErrNotFound("server", id)
	}

	d.store.Servers.Update(id, func(s *domain.Server) {
		s.Version = version
	})

	msg := fmt.Sprintf("Server %s version changed to %s!", srv.Name, version)
	d.announce.Announce(ctx, "server.change-version", msg)
	d.logger.Info("server version changed", "server_id", id, "version", version)
	return msg, nil
}

// AdjustResources overwrites the server's CPU/RAM allocation wholesale.
// No bounds are enforced; negative or absurd values are accepted as-is.
func (d *Dispatcher) AdjustResources(ctx context.Context, id string, cpu, ram int) (string, error) {
	srv, ok := d.store.Servers.Get(id)
	if !ok {
		return "", domain.ErrNotFound("server", id)
	}

	d.store.Servers.Update(id, func(s *domain.Server) {
		s.Resources = domain.Resources{CPU: cpu, RAM: ram}
	})

	msg := fmt.Sprintf("Server %s resources adjusted to CPU %d%%, RAM %dMB!", srv.Name, cpu, ram)
	d.announce.Announce(ctx, "server.adjust-resources", msg)
	d.logger.Info("server resources adjusted", "server_id", id, "cpu", cpu, "ram", ram)
	return msg, nil
}
