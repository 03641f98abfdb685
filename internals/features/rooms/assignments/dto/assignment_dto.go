// file: internals/features/rooms/assignments/dto/assignment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentrix_backend/internals/features/rooms/assignments/model"
	helper "rentrix_backend/internals/helpers"
)

//
// ========== REQUESTS ==========
//

// AssignTenantRequest: move_in_date "YYYY-MM-DD", defaults to today.
type AssignTenantRequest struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	MoveInDate string    `json:"move_in_date" validate:"omitempty"`
	Status     string    `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *AssignTenantRequest) Normalize() {
	r.MoveInDate = strings.TrimSpace(r.MoveInDate)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

func (r *AssignTenantRequest) ParseMoveIn() (time.Time, error) {
	if r.MoveInDate == "" {
		return helper.TimeOf(helper.Today()), nil
	}
	return helper.ParseDate(r.MoveInDate)
}

// UpdateAssignmentRequest: a different room_id moves the tenant.
type UpdateAssignmentRequest struct {
	RoomID     *uuid.UUID `json:"room_id" validate:"omitempty"`
	MoveInDate *string    `json:"move_in_date" validate:"omitempty"`
	Status     *string    `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateAssignmentRequest) Normalize() {
	if r.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
	if r.MoveInDate != nil {
		s := strings.TrimSpace(*r.MoveInDate)
		if s == "" {
			r.MoveInDate = nil
		} else {
			r.MoveInDate = &s
		}
	}
}

type RestoreAssignmentRequest struct {
	RoomID *uuid.UUID `json:"room_id" validate:"omitempty"`
}

type CreateAddOnRequest struct {
	Description string           `json:"description" validate:"required,max=200"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

type ListTenantsQuery struct {
	Q      string `query:"q"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive"`
}

func (q *ListTenantsQuery) Normalize() {
	q.Q = strings.TrimSpace(q.Q)
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
}

//
// ========== RESPONSES ==========
//

type AddOnResponse struct {
	AddOnID          uuid.UUID       `json:"add_on_id"`
	AddOnDescription string          `json:"add_on_description"`
	AddOnAmount      decimal.Decimal `json:"add_on_amount"`
	AddOnCreatedAt   time.Time       `json:"add_on_created_at"`
}

func ToAddOnResponse(m model.AddOnModel) AddOnResponse {
	return AddOnResponse{
		AddOnID:          m.AddOnID,
		AddOnDescription: m.AddOnDescription,
		AddOnAmount:      m.AddOnAmount,
		AddOnCreatedAt:   m.AddOnCreatedAt,
	}
}

func ToAddOnResponses(rows []model.AddOnModel) []AddOnResponse {
	out := make([]AddOnResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAddOnResponse(r))
	}
	return out
}

type TenantBrief struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type AssignmentResponse struct {
	RoomTenantID         uuid.UUID       `json:"room_tenant_id"`
	RoomTenantRoomID     uuid.UUID       `json:"room_tenant_room_id"`
	RoomNumber           string          `json:"room_number,omitempty"`
	RoomTenantUserID     uuid.UUID       `json:"room_tenant_user_id"`
	Tenant               *TenantBrief    `json:"tenant,omitempty"`
	RoomTenantMoveInDate string          `json:"room_tenant_move_in_date"`
	RoomTenantStatus     string          `json:"room_tenant_status"`
	AddOns               []AddOnResponse `json:"add_ons"`
	AddOnTotal           decimal.Decimal `json:"add_on_total"`
	RoomTenantCreatedAt  time.Time       `json:"room_tenant_created_at"`
	RoomTenantUpdatedAt  time.Time       `json:"room_tenant_updated_at"`
}

func ToAssignmentResponse(m model.RoomTenantModel) AssignmentResponse {
	amounts := make([]decimal.Decimal, 0, len(m.AddOns))
	for _, a := range m.AddOns {
		amounts = append(amounts, a.AddOnAmount)
	}
	out := AssignmentResponse{
		RoomTenantID:         m.RoomTenantID,
		RoomTenantRoomID:     m.RoomTenantRoomID,
		RoomTenantUserID:     m.RoomTenantUserID,
		RoomTenantMoveInDate: helper.TimeOf(m.RoomTenantMoveInDate).Format(helper.DateLayout),
		RoomTenantStatus:     m.RoomTenantStatus,
		AddOns:               ToAddOnResponses(m.AddOns),
		AddOnTotal:           helper.SumDecimals(amounts...),
		RoomTenantCreatedAt:  m.RoomTenantCreatedAt,
		RoomTenantUpdatedAt:  m.RoomTenantUpdatedAt,
	}
	if m.Room != nil {
		out.RoomNumber = m.Room.RoomNumber
	}
	if m.Tenant != nil {
		out.Tenant = &TenantBrief{
			ID:        m.Tenant.ID,
			UserName:  m.Tenant.UserName,
			FullName:  m.Tenant.FullName(),
			Email:     m.Tenant.Email,
			FirstName: m.Tenant.FirstName,
			LastName:  m.Tenant.LastName,
		}
	}
	return out
}

func ToAssignmentResponses(rows []model.RoomTenantModel) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAssignmentResponse(r))
	}
	return out
}
