package store

import "github.com/lonelyhost/panel/internal/domain"

// Seed populates the store with the fixed sample data every process starts
// from. Entity creation beyond this happens only for backups.
func Seed(s *Store, operatorHash string) {
	s.Servers.Upsert(domain.Server{
		ID: "1", Name: "Minecraft Server", Type: "Minecraft", Version: "1.20.1",
		Status: domain.StatusOffline, Resources: domain.Resources{CPU: 50, RAM: 1024},
	})
	s.Servers.Upsert(domain.Server{
		ID: "2", Name: "ARK Server", Type: "ARK", Version: "337.16",
		Status: domain.StatusOffline, Resources: domain.Resources{CPU: 70, RAM: 2048},
	})
	s.Servers.Upsert(domain.Server{
		ID: "3", Name: "Rust Server", Type: "Rust", Version: "2023.10.01",
		Status: domain.StatusOffline, Resources: domain.Resources{CPU: 60, RAM: 1536},
	})

	s.Databases.Upsert(domain.Database{ID: "db1", Name: "Minecraft DB", Type: "MySQL"})
	s.Databases.Upsert(domain.Database{ID: "db2", Name: "ARK DB", Type: "MariaDB"})

	s.Tasks.Upsert(domain.Task{ID: "task1", Name: "Daily Backup", Schedule: "0 0 * * *"})
	s.Tasks.Upsert(domain.Task{ID: "task2", Name: "Weekly Restart", Schedule: "0 0 * * 0"})

	s.Players.Upsert(domain.Player{ID: "player1", Name: "Steve", Status: domain.StatusOnline, Balance: 100})
	s.Players.Upsert(domain.Player{ID: "player2", Name: "Alex", Status: domain.StatusOffline, Balance: 50})

	s.Addons.Upsert(domain.Addon{ID: "addon1", Name: "WorldGuard", Price: 40, Description: "Region protection and flags."})
	s.Addons.Upsert(domain.Addon{ID: "addon2", Name: "EssentialsX", Price: 25, Description: "Kits, homes and warps."})
	s.Addons.Upsert(domain.Addon{ID: "addon3", Name: "Dynmap", Price: 35, Description: "Live web map of the world."})

	s.Themes.Upsert(domain.Theme{ID: "theme1", Name: "Midnight Black", Price: 30, Description: "Dark dashboard skin."})
	s.Themes.Upsert(domain.Theme{ID: "theme2", Name: "Ocean Blue", Price: 20, Description: "Cool blue dashboard skin."})

	s.Users.Upsert(domain.User{
		ID: "user1", Username: "admin", PasswordHash: operatorHash,
		Balance: 500, Role: "admin", TwoFactorEnabled: false,
		PurchasedAddons: map[string]struct{}{},
		PurchasedThemes: map[string]struct{}{},
	})

	s.Logs.Upsert(domain.LogLine{ID: "log1", Message: "Server started successfully."})
	s.Logs.Upsert(domain.LogLine{ID: "log2", Message: "Player Steve joined the game."})
}
