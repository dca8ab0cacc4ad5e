// internal/auth/models.go
// Data structures for accounts and tokens.

package auth

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User is an account. Name seeds the profile display name; phone and push
// token are optional delivery addresses for notifications.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	PushToken    *string   `json:"-" db:"push_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"omitempty,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateContactRequest sets the notification addresses. Nil fields are left
// unchanged, empty strings clear them.
type UpdateContactRequest struct {
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	PushToken *string `json:"pushToken" validate:"omitempty,max=4096"`
}

type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"token"`
	ExpiresIn   int    `json:"expiresIn"`
	TokenType   string `json:"tokenType"`
}

const (
	VerificationUnverified = "unverified"
	VerificationVerified   = "verified"
)

// Verification is the account's identity check. Users who never verified get
// a zero-value record with status unverified.
type Verification struct {
	Status     string             `json:"status" db:"status"`
	Method     string             `json:"method,omitempty" db:"method"`
	Detail     VerificationDetail `json:"detail,omitempty" db:"detail"`
	VerifiedAt *time.Time         `json:"verifiedAt,omitempty" db:"verified_at"`
}

// VerificationDetail is stored as a JSONB object
type VerificationDetail map[string]string

func (d VerificationDetail) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *VerificationDetail) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*d = VerificationDetail{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("auth: unsupported verification detail type")
	}
	out := VerificationDetail{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*d = out
	return nil
}

// VerifyRequest fills the field that matches Method: Email, Phone, or Platform and Handle
type VerifyRequest struct {
	Method   string `json:"method" validate:"required,oneof=email phone social"`
	Email    string `json:"email" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=20"`
	Platform string `json:"platform" validate:"max=20"`
	Handle   string `json:"handle" validate:"max=60"`
}
