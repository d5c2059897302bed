package dispatch

import (
	"context"
	"fmt"

	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/ledger"
)

// InstallAddon debits the acting user by the addon price and marks the addon
// purchased. The balance check and debit run under the collection lock so the
// debit happens exactly once per successful call. A repeat purchase re-debits
// but cannot add the id to the purchased set twice.
func (d *Dispatcher) InstallAddon(ctx context.Context, userID, addonID string) (string, error) {
	addon, ok := d.store.Addons.Get(addonID)
	if !ok {
		return "", domain.ErrNotFound("addon", addonID)
	}

	var available int64
	var insufficient bool
	found := d.store.Users.Update(userID, func(u *domain.User) {
		available = u.Balance
		if u.Balance < addon.Price {
			insufficient = true
			return
		}
		u.Balance -= addon.Price
		if u.PurchasedAddons == nil {
			u.PurchasedAddons = map[string]struct{}{}
		}
		u.PurchasedAddons[addon.ID] = struct{}{}
	})
	if !found {
		return "", domain.ErrNotFound("user", userID)
	}
	if insufficient {
		return "", domain.ErrInsufficientBalance(addon.Price, available)
	}

	msg := fmt.Sprintf("Addon %s installed!", addon.Name)
	d.audit.Append(ctx, userID, ledger.TxAddonInstall, -addon.Price, msg)

	if err := d.notify(ctx, fmt.Sprintf("failed to install addon %s", addon.Name),
		fmt.Sprintf("Installing addon %s", addon.Name)); err != nil {
		return "", err
	}

	d.announce.Announce(ctx, "addon.install", msg)
	d.logger.Info("addon installed", "addon_id", addonID, "user_id", userID, "price", addon.Price)
	return msg, nil
}

// PurchaseTheme debits the acting user by the theme price and marks the theme
// purchased. Themes have no shell notification; the purchase itself is the
// whole effect.
func (d *Dispatcher) PurchaseTheme(ctx context.Context, userID, themeID string) (string, error) {
	theme, ok := d.store.Themes.Get(themeID)
	if !ok {
		return "", domain.ErrNotFound("theme", themeID)
	}

	var available int64
	var insufficient bool
	found := d.store.Users.Update(userID, func(u *domain.User) {
		available = u.Balance
		if u.Balance < theme.Price {
			insufficient = true
			return
		}
		u.Balance -= theme.Price
		if u.PurchasedThemes == nil {
			u.PurchasedThemes = map[string]struct{}{}
		}
		u.PurchasedThemes[theme.ID] = struct{}{}
	})
	if !found {
		return "", domain.ErrNotFound("user", userID)
	}
	if insufficient {
		return "", domain.ErrInsufficientBalance(theme.Price, available)
	}

	msg := fmt.Sprintf("Theme %s purchased!", theme.Name)
	d.audit.Append(ctx, userID, ledger.TxThemePurchase, -theme.Price, msg)
	d.announce.Announce(ctx, "theme.purchase", msg)
	d.logger.Info("theme purchased", "theme_id", themeID, "user_id", userID, "price", theme.Price)
	return msg, nil
}
