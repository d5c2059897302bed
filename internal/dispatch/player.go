package dispatch

import (
	"context"
	"fmt"

	"github.com/lonelyhost/panel/internal/domain"
)

// KickPlayer fires the kick notification. Player state is untouched.
func (d *Dispatcher) KickPlayer(ctx context.Context, id string) (string, error) {
	player, ok := d.store.Players.Get(id)
	if !ok {
		return "", domain.ErrNotFound("player", id)
	}

	if err := d.notify(ctx, fmt.Sprintf("failed to kick player %s", player.Name),
		fmt.Sprintf("Kicking player %s", player.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Player %s kicked!", player.Name)
	d.announce.Announce(ctx, "player.kick", msg)
	d.logger.Info("player kicked", "player_id", id)
	return msg, nil
}

// BanPlayer fires the ban notification. The player's status is deliberately
// not changed: ban is a pure notification in the current design.
func (d *Dispatcher) BanPlayer(ctx context.Context, id string) (string, error) {
	player, ok := d.store.Players.Get(id)
	if !ok {
		return "", domain.ErrNotFound("player", id)
	}

	if err := d.notify(ctx, fmt.Sprintf("failed to ban player %s", player.Name),
		fmt.Sprintf("Banning player %s", player.Name)); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Player %s banned!", player.Name)
	d.announce.Announce(ctx, "player.ban", msg)
	d.logger.Info("player banned", "player_id", id)
	return msg, nil
}
