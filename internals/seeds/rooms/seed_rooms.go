package rooms

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"rentrix_backend/internals/features/rooms/rooms/model"
)

type RoomSeed struct {
	RoomNumber   string `json:"room_number"`
	RoomCapacity int    `json:"room_capacity"`
}

func SeedRoomsFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading rooms:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []RoomSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	var existing []string
	if err := db.Model(&model.RoomModel{}).Pluck("room_number", &existing).Error; err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n] = true
	}

	var rows []model.RoomModel
	for _, s := range seeds {
		if seen[s.RoomNumber] {
			log.Printf("ℹ️ Room '%s' exists, skipped.", s.RoomNumber)
			continue
		}
		rows = append(rows, model.RoomModel{RoomNumber: s.RoomNumber, RoomCapacity: s.RoomCapacity})
	}
	if len(rows) == 0 {
		log.Println("ℹ️ No new rooms.")
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert rooms: %w", err)
	}
	log.Printf("✅ Inserted %d rooms", len(rows))
	return nil
}
