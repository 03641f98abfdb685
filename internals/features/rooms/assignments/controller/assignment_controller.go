// file: internals/features/rooms/assignments/controller/assignment_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/features/rooms/assignments/dto"
	"rentrix_backend/internals/features/rooms/assignments/model"
	assignmentService "rentrix_backend/internals/features/rooms/assignments/service"
	roomService "rentrix_backend/internals/features/rooms/rooms/service"
	helper "rentrix_backend/internals/helpers"
)

type AssignmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAssignmentController(db *gorm.DB, v *validator.Validate) *AssignmentController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AssignmentController{DB: db, Validate: v}
}

var errAssignmentElsewhere = fiber.NewError(fiber.StatusNotFound, "Assignment not found in this room")

// respond invalidates the touched rooms (already committed) and returns the fresh assignment.
func (ctl *AssignmentController) respond(c *fiber.Ctx, res *assignmentService.Result, msg string, created bool) error {
	roomService.InvalidateRooms(c.UserContext(), res.Rooms)

	a, err := assignmentService.GetAssignment(ctl.DB.WithContext(c.UserContext()), res.Assignment.RoomTenantID)
	if err != nil {
		return helper.FromError(c, err)
	}
	if created {
		return helper.JsonCreated(c, msg, dto.ToAssignmentResponse(*a))
	}
	return helper.JsonUpdated(c, msg, dto.ToAssignmentResponse(*a))
}

// scoped loads an assignment and checks that it belongs to :id.
func (ctl *AssignmentController) scoped(c *fiber.Ctx) (*model.RoomTenantModel, error) {
	roomID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	assignmentID, err := helper.ParseUUIDParam(c, "assignment_id")
	if err != nil {
		return nil, err
	}
	a, err := assignmentService.GetAssignment(ctl.DB.WithContext(c.UserContext()), assignmentID)
	if err != nil {
		return nil, err
	}
	if a.RoomTenantRoomID != roomID {
		return nil, errAssignmentElsewhere
	}
	return a, nil
}

/* =======================================================
   ASSIGN
   POST /rooms/:id/tenants
   ======================================================= */

func (ctl *AssignmentController) Assign(c *fiber.Ctx) error {
	roomID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.AssignTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	moveIn, err := req.ParseMoveIn()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"move_in_date": {err.Error()}})
	}

	res, err := assignmentService.Assign(c.UserContext(), ctl.DB, assignmentService.AssignInput{
		RoomID:     roomID,
		UserID:     req.UserID,
		MoveInDate: moveIn,
		Status:     req.Status,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	configs.Log.Info("tenant assigned",
		zap.String("room_id", roomID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.String("assignment_id", res.Assignment.RoomTenantID.String()),
	)
	return ctl.respond(c, res, "Tenant assigned", true)
}

/* =======================================================
   DETAIL
   GET /rooms/:id/tenants/:assignment_id
   ======================================================= */

func (ctl *AssignmentController) Get(c *fiber.Ctx) error {
	a, err := ctl.scoped(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToAssignmentResponse(*a))
}

/* =======================================================
   PATCH (edit / move)
   PATCH /rooms/:id/tenants/:assignment_id
   ======================================================= */

func (ctl *AssignmentController) Patch(c *fiber.Ctx) error {
	a, err := ctl.scoped(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	in := assignmentService.UpdateInput{RoomID: req.RoomID, Status: req.Status}
	if req.MoveInDate != nil {
		d, err := helper.ParseDate(*req.MoveInDate)
		if err != nil {
			return helper.JsonValidationError(c, map[string][]string{"move_in_date": {err.Error()}})
		}
		in.MoveInDate = &d
	}

	res, err := assignmentService.Update(c.UserContext(), ctl.DB, a.RoomTenantID, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctl.respond(c, res, "Assignment updated", false)
}

/* =======================================================
   ARCHIVE
   POST /rooms/:id/tenants/:assignment_id/archive
   ======================================================= */

func (ctl *AssignmentController) Archive(c *fiber.Ctx) error {
	a, err := ctl.scoped(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := assignmentService.Archive(c.UserContext(), ctl.DB, a.RoomTenantID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctl.respond(c, res, "Tenant archived", false)
}

/* =======================================================
   DELETE
   DELETE /rooms/:id/tenants/:assignment_id
   ======================================================= */

func (ctl *AssignmentController) Delete(c *fiber.Ctx) error {
	a, err := ctl.scoped(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := assignmentService.Delete(c.UserContext(), ctl.DB, a.RoomTenantID)
	if err != nil {
		return helper.FromError(c, err)
	}
	roomService.InvalidateRooms(c.UserContext(), res.Rooms)
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"room_tenant_id": a.RoomTenantID})
}

/* =======================================================
   RESTORE
   POST /tenants/:assignment_id/restore   body: {"room_id": "..."} (optional)
   ======================================================= */

func (ctl *AssignmentController) Restore(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "assignment_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.RestoreAssignmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}
	roomID := uuid.Nil
	if req.RoomID != nil {
		roomID = *req.RoomID
	}
	res, err := assignmentService.Restore(c.UserContext(), ctl.DB, id, roomID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return ctl.respond(c, res, "Tenant restored", false)
}

/* =======================================================
   TENANT LISTS
   GET /tenants?q=&status=    GET /tenants/archived?q=
   ======================================================= */

func (ctl *AssignmentController) ListTenants(c *fiber.Ctx) error {
	var q dto.ListTenantsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	if err := ctl.Validate.Struct(&q); err != nil {
		return helper.ValidationError(c, err)
	}
	if q.Status == "" {
		q.Status = model.AssignmentActive
	}
	return ctl.listTenants(c, q)
}

func (ctl *AssignmentController) ListArchived(c *fiber.Ctx) error {
	var q dto.ListTenantsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	q.Status = model.AssignmentInactive
	return ctl.listTenants(c, q)
}

func (ctl *AssignmentController) listTenants(c *fiber.Ctx, q dto.ListTenantsQuery) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := assignmentService.ListTenants(ctl.DB.WithContext(c.UserContext()),
		assignmentService.TenantFilter{Q: q.Q, Status: q.Status}, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load tenants")
	}
	return helper.JsonList(c, "ok", dto.ToAssignmentResponses(rows), helper.BuildPagination(total, p))
}

/* =======================================================
   ADD-ONS
   GET|POST /assignments/:assignment_id/addons
   DELETE   /assignments/:assignment_id/addons/:addon_id
   ======================================================= */

func (ctl *AssignmentController) ListAddOns(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "assignment_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())
	if _, err := assignmentService.GetAssignment(db, id); err != nil {
		return helper.FromError(c, err)
	}
	total, rows, err := assignmentService.SumAddOns(db, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load add-ons")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"add_ons":      dto.ToAddOnResponses(rows),
		"add_on_total": total,
	})
}

func (ctl *AssignmentController) CreateAddOn(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "assignment_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateAddOnRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	ao, err := assignmentService.AddAddOn(c.UserContext(), ctl.DB, id, req.Description, *req.Amount)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Add-on added", dto.ToAddOnResponse(*ao))
}

func (ctl *AssignmentController) DeleteAddOn(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "assignment_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	addOnID, err := helper.ParseUUIDParam(c, "addon_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := assignmentService.DeleteAddOn(c.UserContext(), ctl.DB, id, addOnID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Add-on deleted", fiber.Map{"add_on_id": addOnID, "deleted_at": time.Now().UTC()})
}
