package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
)

// CodedError carries an HTTP status plus a machine-readable code.
type CodedError struct {
	Status  int
	Code    string
	Message string
}

func (e *CodedError) Error() string { return e.Message }

func NewCodedError(status int, code, message string) *CodedError {
	return &CodedError{Status: status, Code: code, Message: message}
}

// MapDBError turns driver errors into *fiber.Error with a sensible status.
// Unknown errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Data not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.NewError(fiber.StatusConflict, "Duplicate data")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgCodeToFiber(pgErr.Code, pgErr.ConstraintName)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgCodeToFiber(string(pqErr.Code), pqErr.Constraint)
	}

	// sqlite driver surfaces constraint failures as plain text
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fiber.NewError(fiber.StatusConflict, "Duplicate data")
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fiber.NewError(fiber.StatusBadRequest, "Referenced data does not exist")
	}
	return err
}

// IsUniqueViolation reports whether err is a duplicate-key failure on any supported driver.
func IsUniqueViolation(err error) bool {
	var fe *fiber.Error
	return errors.As(MapDBError(err), &fe) && fe.Code == fiber.StatusConflict
}

func pgCodeToFiber(code, constraint string) error {
	switch code {
	case "23505":
		msg := "Duplicate data"
		if constraint != "" {
			msg += " (" + constraint + ")"
		}
		return fiber.NewError(fiber.StatusConflict, msg)
	case "23503":
		return fiber.NewError(fiber.StatusBadRequest, "Referenced data does not exist")
	case "23514", "22P02":
		return fiber.NewError(fiber.StatusBadRequest, "Invalid data")
	case "57014":
		return fiber.NewError(fiber.StatusServiceUnavailable, "Query timed out")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Database error")
}

// FromError writes a consistent JSON error for anything a service returns.
func FromError(c *fiber.Ctx, err error) error {
	var ce *CodedError
	if errors.As(err, &ce) {
		return JsonErrorCode(c, ce.Status, ce.Code, ce.Message)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ValidationErrors(err))
	}
	mapped := MapDBError(err)
	var fe *fiber.Error
	if errors.As(mapped, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	configs.Log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
