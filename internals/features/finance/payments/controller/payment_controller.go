// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/features/finance/payments/dto"
	paymentService "rentrix_backend/internals/features/finance/payments/service"
	helper "rentrix_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPaymentController(db *gorm.DB, v *validator.Validate) *PaymentController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &PaymentController{DB: db, Validate: v}
}

/* =======================================================
   LIST (landlord)
   GET /api/a/payments?year=&month=&status=&q=&page=&per_page=
   ======================================================= */

func (ctl *PaymentController) List(c *fiber.Ctx) error {
	var q dto.ListPaymentsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	q.Normalize()
	p := helper.ResolvePaging(c, 20, 100)

	f := paymentService.ListFilter{Year: q.Year, Status: q.Status, Q: q.Q}
	if q.Month != "" {
		m, err := helper.ParseMonth(q.Month)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		f.Month = &m
	}

	rows, total, err := paymentService.List(ctl.DB.WithContext(c.UserContext()), f, p.Limit, p.Offset)
	if err != nil {
		configs.Log.Error("list payments failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load payments")
	}

	out := dto.ToPaymentResponses(rows, configs.CurrencySymbol)
	if err := ctl.fillNames(out); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load payment owners")
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, p))
}

// fillNames decorates rows with tenant name and room number.
func (ctl *PaymentController) fillNames(rows []dto.PaymentResponse) error {
	if len(rows) == 0 {
		return nil
	}
	userIDs := make([]uuid.UUID, 0, len(rows))
	roomIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		userIDs = append(userIDs, r.PaymentUserID)
		roomIDs = append(roomIDs, r.PaymentRoomID)
	}

	var users []struct {
		ID        uuid.UUID
		UserName  string
		FirstName string
		LastName  string
	}
	if err := ctl.DB.Table("users").Select("id, user_name, first_name, last_name").
		Where("id IN ?", userIDs).Scan(&users).Error; err != nil {
		return err
	}
	var rooms []struct {
		RoomID     uuid.UUID
		RoomNumber string
	}
	if err := ctl.DB.Table("rooms").Select("room_id, room_number").
		Where("room_id IN ?", roomIDs).Scan(&rooms).Error; err != nil {
		return err
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		n := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
		if n == "" {
			n = u.UserName
		}
		names[u.ID] = n
	}
	numbers := make(map[uuid.UUID]string, len(rooms))
	for _, r := range rooms {
		numbers[r.RoomID] = r.RoomNumber
	}
	for i := range rows {
		rows[i].TenantName = names[rows[i].PaymentUserID]
		rows[i].RoomNumber = numbers[rows[i].PaymentRoomID]
	}
	return nil
}

/* =======================================================
   TRACKING
   GET /api/a/payments/tracking?year=YYYY
   GET /api/a/payments/tracking/export?year=YYYY
   ======================================================= */

func (ctl *PaymentController) Tracking(c *fiber.Ctx) error {
	grid, err := ctl.tracking(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", grid)
}

func (ctl *PaymentController) ExportTracking(c *fiber.Ctx) error {
	grid, err := ctl.tracking(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	b, err := paymentService.ExportTracking(grid)
	if err != nil {
		configs.Log.Error("tracking export failed", zap.Int("year", grid.Year), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build workbook")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+paymentService.TrackingFilename(grid.Year)+`"`)
	return c.Send(b)
}

func (ctl *PaymentController) tracking(c *fiber.Ctx) (*paymentService.TrackingGrid, error) {
	now := time.Now()
	year := now.Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 9999 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "year must be a 4-digit number")
		}
		year = y
	}
	sx, err := helper.SQLX(ctl.DB)
	if err != nil {
		return nil, err
	}
	return paymentService.Tracking(c.UserContext(), sx, year, now)
}

/* =======================================================
   PER TENANT
   ======================================================= */

// GET /api/a/tenants/:user_id/payments?year=
func (ctl *PaymentController) TenantHistory(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := paymentService.History(ctl.DB.WithContext(c.UserContext()), userID, c.QueryInt("year"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToPaymentResponses(rows, configs.CurrencySymbol))
}

// GET /api/a/tenants/:user_id/payments/preview
func (ctl *PaymentController) Preview(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	b, err := paymentService.Preview(ctl.DB.WithContext(c.UserContext()), userID, configs.BaseRent)
	if err != nil {
		return helper.FromError(c, err)
	}

	out := dto.PaymentPreviewResponse{
		AssignmentID:   b.Assignment.RoomTenantID,
		RoomID:         b.Assignment.RoomTenantRoomID,
		BaseAmount:     b.BaseAmount,
		AddOns:         make([]dto.AddOnLine, 0, len(b.AddOns)),
		AddOnTotal:     b.AddOnTotal,
		TotalAmount:    b.Total,
		TotalAmountTxt: helper.FormatMoney(configs.CurrencySymbol, b.Total),
	}
	if b.Room != nil {
		out.RoomNumber = b.Room.RoomNumber
	}
	for _, a := range b.AddOns {
		out.AddOns = append(out.AddOns, dto.AddOnLine{Description: a.AddOnDescription, Amount: a.AddOnAmount})
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/a/tenants/:user_id/payments
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	landlordID, _ := helper.GetUserIDFromToken(c)

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	month, paidOn, err := req.Parse()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := paymentService.Create(c.UserContext(), ctl.DB, paymentService.CreateInput{
		UserID:      userID,
		Month:       month,
		PaymentDate: paidOn,
		Status:      req.PaymentStatus,
		BaseAmount:  configs.BaseRent,
		LandlordID:  landlordID,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	configs.Log.Info("payment recorded",
		zap.String("payment_id", p.PaymentID.String()),
		zap.String("receipt_number", p.PaymentReceiptNumber),
		zap.String("amount", p.PaymentAmount.StringFixed(2)),
	)
	return helper.JsonCreated(c, "Payment recorded", dto.ToPaymentResponse(*p, configs.CurrencySymbol))
}

// PATCH /api/a/payments/:id
func (ctl *PaymentController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	in := paymentService.UpdateInput{Status: req.PaymentStatus, Amount: req.PaymentAmount}
	if req.PaymentMonth != nil {
		m, err := helper.ParseMonth(*req.PaymentMonth)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		in.Month = &m
	}
	if req.PaymentDate != nil {
		d, err := helper.ParseDate(*req.PaymentDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		in.PaymentDate = &d
	}
	p, err := paymentService.Update(c.UserContext(), ctl.DB, id, in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Payment updated", dto.ToPaymentResponse(*p, configs.CurrencySymbol))
}
