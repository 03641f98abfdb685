package database

import (
	"fmt"

	"gorm.io/gorm"

	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	authModel "rentrix_backend/internals/features/users/auth/model"
	userModel "rentrix_backend/internals/features/users/user/model"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&userModel.UserModel{},
		&userModel.TenantSecurityProfileModel{},
		&userModel.LandlordProfileModel{},
		&roomModel.RoomModel{},
		&assignmentModel.RoomTenantModel{},
		&assignmentModel.AddOnModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.ReceiptModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
	}
}

// Migrate brings the schema up to date. Safe to run on every boot.
func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}
	return nil
}

// MigrateTables returns the table names Migrate manages.
func MigrateTables(db *gorm.DB) ([]string, error) {
	out := make([]string, 0, len(Models()))
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		out = append(out, stmt.Schema.Table)
	}
	return out, nil
}
