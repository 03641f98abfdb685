package users

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	authHelper "rentrix_backend/internals/features/users/auth/helper"
	"rentrix_backend/internals/features/users/user/model"
	userService "rentrix_backend/internals/features/users/user/service"
)

type UserSeed struct {
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// SeedUsersFromJSON inserts missing users. Tenants get a security profile with the
// forced password change flag set.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Reading users:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		var existing model.UserModel
		if err := db.Where("LOWER(user_name) = ?", strings.ToLower(data.UserName)).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User '%s' exists, skipped.", data.UserName)
			continue
		}
		if _, err := CreateUser(db, data); err != nil {
			return fmt.Errorf("seed user %s: %w", data.UserName, err)
		}
		log.Printf("✅ Inserted user '%s'", data.UserName)
	}
	return nil
}

// CreateUser hashes the password and inserts the user (plus profile for tenants) in one transaction.
func CreateUser(db *gorm.DB, data UserSeed) (*model.UserModel, error) {
	hashed, err := authHelper.HashPassword(data.Password)
	if err != nil {
		return nil, err
	}
	u := &model.UserModel{
		UserName:  strings.TrimSpace(data.UserName),
		Password:  hashed,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		IsStaff:   data.IsStaff,
		IsActive:  true,
	}
	if e := strings.TrimSpace(data.Email); e != "" {
		u.Email = &e
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if u.IsStaff {
			return nil
		}
		return userService.SetForcePasswordChange(tx, u.ID, true)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
