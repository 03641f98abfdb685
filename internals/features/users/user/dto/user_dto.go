// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"rentrix_backend/internals/features/users/user/model"
)

type CreateTenantRequest struct {
	UserName string `json:"user_name" validate:"required,max=140"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (r *CreateTenantRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserName    string     `json:"user_name"`
	FullName    string     `json:"full_name"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		FullName:    u.FullName(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.EmailValue(),
		Role:        u.Role(),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func ToUserResponses(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// CreatedTenantResponse echoes the initial password once so the landlord can hand it over.
type CreatedTenantResponse struct {
	UserResponse
	InitialPassword    string `json:"initial_password"`
	MustChangePassword bool   `json:"must_change_password"`
}

type SignatureResponse struct {
	HasSignature bool       `json:"has_signature"`
	SignatureURL *string    `json:"signature_url,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func ToSignatureResponse(p model.LandlordProfileModel) SignatureResponse {
	out := SignatureResponse{
		HasSignature: p.LandlordProfileSignatureKey != nil && *p.LandlordProfileSignatureKey != "",
		SignatureURL: p.LandlordProfileSignatureURL,
	}
	if !p.LandlordProfileUpdatedAt.IsZero() {
		t := p.LandlordProfileUpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
