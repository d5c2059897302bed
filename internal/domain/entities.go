package domain

import (
	"sort"
	"time"
)

// Status is the binary online/offline flag used by servers and players.
// There is no intermediate "starting" state; transitions happen only
// through explicit actions.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// Resources holds a server's allocation: CPU as a percentage, RAM in megabytes.
type Resources struct {
	CPU int `json:"cpu"`
	RAM int `json:"ram"`
}

// Server is a managed game-server instance.
type Server struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	Status    Status    `json:"status"`
	Resources Resources `json:"resources"`
}

// Player is an in-game player with an economy balance.
// Balance is an integer and may go negative; no floor is enforced.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Balance int64  `json:"balance"`
}

// User is a panel operator. Purchased addon/theme ids are kept as sets so an
// item can never be recorded twice; a repeat purchase still debits the balance.
type User struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	PasswordHash     string `json:"-"`
	Balance          int64  `json:"balance"`
	Role             string `json:"role"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`

	PurchasedAddons map[string]struct{} `json:"-"`
	PurchasedThemes map[string]struct{} `json:"-"`
}

// HasAddon reports whether the addon id is already in the purchased set.
func (u *User) HasAddon(id string) bool {
	_, ok := u.PurchasedAddons[id]
	return ok
}

// HasTheme reports whether the theme id is already in the purchased set.
func (u *User) HasTheme(id string) bool {
	_, ok := u.PurchasedThemes[id]
	return ok
}

// AddonIDs returns the purchased addon ids in sorted order.
func (u *User) AddonIDs() []string {
	return sortedKeys(u.PurchasedAddons)
}

// ThemeIDs returns the purchased theme ids in sorted order.
func (u *User) ThemeIDs() []string {
	return sortedKeys(u.PurchasedThemes)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Addon is a purchasable catalog item installed onto the panel.
type Addon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// Theme is a purchasable dashboard skin.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// Backup records a point-in-time backup of a server. Backups are the only
// entities created after seeding; nothing is ever deleted.
type Backup struct {
	ID       string    `json:"id"`
	ServerID string    `json:"server_id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
}

// Database is a managed database attached to a game server.
type Database struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Task is a scheduled job. The schedule is a descriptive cron string only;
// no scheduler drives it, tasks run on demand.
type Task struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

// LogLine is a panel log message shown on the dashboard.
type LogLine struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
