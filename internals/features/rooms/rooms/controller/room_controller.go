// file: internals/features/rooms/rooms/controller/room_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/features/rooms/rooms/dto"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	roomService "rentrix_backend/internals/features/rooms/rooms/service"
	helper "rentrix_backend/internals/helpers"
)

type RoomController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRoomController(db *gorm.DB, v *validator.Validate) *RoomController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &RoomController{DB: db, Validate: v}
}

/* =======================================================
   LIST
   GET /rooms?q=&status=&page=&per_page=
   ======================================================= */

func (ctl *RoomController) List(c *fiber.Ctx) error {
	var q dto.ListRoomsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	if err := ctl.Validate.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 200)

	rows, total, err := roomService.ListRooms(ctl.DB.WithContext(c.UserContext()),
		roomService.ListRoomsFilter{Q: q.Q, Status: q.Status}, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load rooms")
	}
	return helper.JsonList(c, "ok", dto.ToRoomResponses(rows), helper.BuildPagination(total, p))
}

/* =======================================================
   DETAIL
   GET /rooms/:id
   ======================================================= */

func (ctl *RoomController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())
	room, err := roomService.GetRoom(db, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	active, err := roomService.ActiveAssignments(db, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load tenants")
	}
	return helper.JsonOK(c, "ok", dto.ToRoomDetailResponse(*room, active))
}

/* =======================================================
   CREATE
   POST /rooms
   ======================================================= */

func (ctl *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	room, err := roomService.CreateRoom(c.UserContext(), ctl.DB, req.RoomNumber, req.RoomCapacity)
	if err != nil {
		return helper.FromError(c, err)
	}
	configs.Log.Info("room created", zap.String("room_id", room.RoomID.String()), zap.String("room_number", room.RoomNumber))
	return helper.JsonCreated(c, "Room created", dto.ToRoomResponse(*room))
}

/* =======================================================
   PATCH
   PATCH /rooms/:id
   ======================================================= */

func (ctl *RoomController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	room, err := roomService.UpdateRoom(c.UserContext(), ctl.DB, id, roomService.UpdateRoomInput{
		RoomNumber: req.RoomNumber,
		Capacity:   req.RoomCapacity,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	roomService.InvalidateRooms(c.UserContext(), []roomModel.RoomModel{*room})
	return helper.JsonUpdated(c, "Room updated", dto.ToRoomResponse(*room))
}

/* =======================================================
   DELETE
   DELETE /rooms/:id
   ======================================================= */

func (ctl *RoomController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	room, err := roomService.DeleteRoom(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	roomService.InvalidateRooms(c.UserContext(), []roomModel.RoomModel{*room})
	configs.Log.Info("room deleted", zap.String("room_id", id.String()), zap.String("room_number", room.RoomNumber))
	return helper.JsonDeleted(c, "Room deleted", fiber.Map{"room_id": id})
}

/* =======================================================
   RECONCILE ALL
   POST /rooms/reconcile
   ======================================================= */

func (ctl *RoomController) ReconcileAll(c *fiber.Ctx) error {
	var n int
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = roomService.ReconcileAll(tx)
		return err
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reconcile rooms")
	}
	var ids []roomModel.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).Select("room_id").Find(&ids).Error; err == nil {
		roomService.InvalidateRooms(c.UserContext(), ids)
	}
	return helper.JsonOK(c, "Rooms reconciled", fiber.Map{"rooms": n})
}
