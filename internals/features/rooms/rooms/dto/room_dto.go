// file: internals/features/rooms/rooms/dto/room_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	assignmentDTO "rentrix_backend/internals/features/rooms/assignments/dto"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	"rentrix_backend/internals/features/rooms/rooms/model"
)

type CreateRoomRequest struct {
	RoomNumber   string `json:"room_number" validate:"required,max=10"`
	RoomCapacity int    `json:"room_capacity" validate:"omitempty,min=1,max=100"`
}

func (r *CreateRoomRequest) Normalize() {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
}

// UpdateRoomRequest is a PATCH: nil fields are left alone.
type UpdateRoomRequest struct {
	RoomNumber   *string `json:"room_number" validate:"omitempty,min=1,max=10"`
	RoomCapacity *int    `json:"room_capacity" validate:"omitempty,min=1,max=100"`
}

type ListRoomsQuery struct {
	Q      string `query:"q"`
	Status string `query:"status" validate:"omitempty,oneof=vacant full"`
}

func (q *ListRoomsQuery) Normalize() {
	q.Q = strings.TrimSpace(q.Q)
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
}

type RoomResponse struct {
	RoomID               uuid.UUID `json:"room_id"`
	RoomNumber           string    `json:"room_number"`
	RoomCapacity         int       `json:"room_capacity"`
	RoomCurrentOccupants int       `json:"room_current_occupants"`
	RoomAvailableSlots   int       `json:"room_available_slots"`
	RoomStatus           string    `json:"room_status"`
	RoomCreatedAt        time.Time `json:"room_created_at"`
	RoomUpdatedAt        time.Time `json:"room_updated_at"`
}

func ToRoomResponse(m model.RoomModel) RoomResponse {
	slots := m.RoomCapacity - m.RoomCurrentOccupants
	if slots < 0 {
		slots = 0
	}
	return RoomResponse{
		RoomID:               m.RoomID,
		RoomNumber:           m.RoomNumber,
		RoomCapacity:         m.RoomCapacity,
		RoomCurrentOccupants: m.RoomCurrentOccupants,
		RoomAvailableSlots:   slots,
		RoomStatus:           m.RoomStatus,
		RoomCreatedAt:        m.RoomCreatedAt,
		RoomUpdatedAt:        m.RoomUpdatedAt,
	}
}

func ToRoomResponses(rows []model.RoomModel) []RoomResponse {
	out := make([]RoomResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToRoomResponse(r))
	}
	return out
}

// RoomDetailResponse is a room with its active tenants.
type RoomDetailResponse struct {
	RoomResponse
	Tenants []assignmentDTO.AssignmentResponse `json:"tenants"`
}

func ToRoomDetailResponse(m model.RoomModel, active []assignmentModel.RoomTenantModel) RoomDetailResponse {
	return RoomDetailResponse{
		RoomResponse: ToRoomResponse(m),
		Tenants:      assignmentDTO.ToAssignmentResponses(active),
	}
}
