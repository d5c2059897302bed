package dispatch

import (
	"context"
	"fmt"

	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/ledger"
)

// AddFunds credits a player's balance and appends an audit entry.
func (d *Dispatcher) AddFunds(ctx context.Context, playerID string, amount int64) (string, error) {
	player, ok := d.store.Players.Get(playerID)
	if !ok {
		return "", domain.ErrNotFound("player", playerID)
	}

	d.store.Players.Update(playerID, func(p *domain.Player) {
		p.Balance += amount
	})

	msg := fmt.Sprintf("Added $%d to %s's balance.", amount, player.Name)
	d.audit.Append(ctx, playerID, ledger.TxFundsAdded, amount, msg)
	d.announce.Announce(ctx, "economy.add", msg)
	d.logger.Info("funds added", "player_id", playerID, "amount", amount)
	return msg, nil
}

// RemoveFunds debits a player's balance. No floor is enforced; the balance may
// go negative.
func (d *Dispatcher) RemoveFunds(ctx context.Context, playerID string, amount int64) (string, error) {
	player, ok := d.store.Players.Get(playerID)
	if !ok {
		return "", domain.ErrNotFound("player", playerID)
	}

	d.store.Players.Update(playerID, func(p *domain.Player) {
		p.Balance -= amount
	})

	msg := fmt.Sprintf("Removed $%d from %s's balance.", amount, player.Name)
	d.audit.Append(ctx, playerID, ledger.TxFundsRemoved, -amount, msg)
	d.announce.Announce(ctx, "economy.remove", msg)
	d.logger.Info("funds removed", "player_id", playerID, "amount", amount)
	return msg, nil
}
