package seeds

import (
	"path/filepath"

	"gorm.io/gorm"

	rooms "rentrix_backend/internals/seeds/rooms"
	users "rentrix_backend/internals/seeds/users"
)

// RunAllSeeds loads the demo data found under dir (normally internals/seeds).
func RunAllSeeds(db *gorm.DB, dir string) error {
	//* Users
	if err := users.SeedUsersFromJSON(db, filepath.Join(dir, "users", "data_users.json")); err != nil {
		return err
	}

	//* Rooms
	return rooms.SeedRoomsFromJSON(db, filepath.Join(dir, "rooms", "data_rooms.json"))
}
