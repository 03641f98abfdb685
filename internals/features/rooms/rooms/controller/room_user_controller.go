// file: internals/features/rooms/rooms/controller/room_user_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentrix_backend/internals/features/rooms/rooms/dto"
	roomService "rentrix_backend/internals/features/rooms/rooms/service"
	helper "rentrix_backend/internals/helpers"
)

// ListPublic: GET /api/u/rooms (read-only)
func (ctl *RoomController) ListPublic(c *fiber.Ctx) error {
	var q dto.ListRoomsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	if err := ctl.Validate.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}
	rows, _, err := roomService.ListRooms(ctl.DB.WithContext(c.UserContext()),
		roomService.ListRoomsFilter{Q: q.Q, Status: q.Status}, 0, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load rooms")
	}
	return helper.JsonOK(c, "ok", dto.ToRoomResponses(rows))
}

// GetPublic: GET /api/u/rooms/:id, served through the room cache.
func (ctl *RoomController) GetPublic(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	room, err := roomService.GetRoomCached(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToRoomResponse(*room))
}
