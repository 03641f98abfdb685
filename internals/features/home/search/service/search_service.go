package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gorm.io/gorm"

	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
)

const (
	MinQueryLength = 2
	perKindLimit   = 5
)

type Result struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	URL   string `json:"url"`
}

// Search matches rooms by number, then assignments by tenant name, username
// or email. Short queries return an empty, non-nil slice.
func Search(ctx context.Context, db *gorm.DB, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	results := make([]Result, 0, 2*perKindLimit)
	if len([]rune(query)) < MinQueryLength {
		return results, nil
	}
	like := "%" + strings.ToLower(query) + "%"
	tx := db.WithContext(ctx)

	var rooms []roomModel.RoomModel
	if err := tx.Where("LOWER(room_number) LIKE ?", like).
		Order("room_number ASC").
		Limit(perKindLimit).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	for _, r := range rooms {
		results = append(results, Result{
			Type:  "Room",
			Title: "Room " + r.RoomNumber,
			Icon:  "fa-door-open",
			URL:   "/rooms/" + r.RoomID.String() + "/",
		})
	}

	var assignments []assignmentModel.RoomTenantModel
	if err := tx.Model(&assignmentModel.RoomTenantModel{}).
		Joins("JOIN users u ON u.id = room_tenants.room_tenant_user_id").
		Where(`(
			LOWER(u.first_name) LIKE ?
			OR LOWER(u.last_name) LIKE ?
			OR LOWER(u.user_name) LIKE ?
			OR LOWER(COALESCE(u.email, '')) LIKE ?
		)`, like, like, like, like).
		Preload("Tenant").
		Order("u.user_name ASC").
		Limit(perKindLimit).
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("search tenants: %w", err)
	}
	for _, a := range assignments {
		if a.Tenant == nil {
			continue
		}
		results = append(results, Result{
			Type:  "Tenant",
			Title: a.Tenant.FullName(),
			Icon:  "fa-user",
			URL:   "/tenants/?q=" + url.QueryEscape(query),
		})
	}
	return results, nil
}
