package service

import (
	"strings"

	"gorm.io/gorm"

	model "rentrix_backend/internals/features/rooms/assignments/model"
)

type TenantFilter struct {
	Q      string
	Status string
}

// ListTenants returns assignments joined with tenant and room.
// q matches first/last/user name, email or room number, case-insensitively.
func ListTenants(tx *gorm.DB, f TenantFilter, limit, offset int) ([]model.RoomTenantModel, int64, error) {
	q := tx.Model(&model.RoomTenantModel{}).
		Joins("JOIN users u ON u.id = room_tenants.room_tenant_user_id").
		Joins("JOIN rooms r ON r.room_id = room_tenants.room_tenant_room_id")

	if f.Status != "" {
		q = q.Where("room_tenants.room_tenant_status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(`(
			LOWER(u.first_name) LIKE ?
			OR LOWER(u.last_name) LIKE ?
			OR LOWER(u.user_name) LIKE ?
			OR LOWER(COALESCE(u.email, '')) LIKE ?
			OR LOWER(r.room_number) LIKE ?
		)`, like, like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.RoomTenantModel
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.
		Preload("Room").
		Preload("Tenant").
		Preload("AddOns", func(db *gorm.DB) *gorm.DB { return db.Order("add_on_created_at DESC") }).
		Order("r.room_number ASC").
		Order("room_tenants.room_tenant_move_in_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
