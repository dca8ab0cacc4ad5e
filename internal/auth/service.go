// internal/auth/service.go
// Registration, login and token validation.

package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/database"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/profile"
)

const msgInvalidCredentials = "Invalid credentials"

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	UpdateContact(ctx context.Context, userID int64, req *UpdateContactRequest) (*User, error)
	Verify(ctx context.Context, userID int64, req *VerifyRequest) (*Verification, error)
	GetVerification(ctx context.Context, userID int64) (*Verification, error)
}

// Config holds service configuration
type Config struct {
	JWTSecret         string
	AccessTokenExpiry time.Duration
	BCryptCost        int
}

type service struct {
	repo     Repository
	profiles profile.Service
	tx       database.Transactor
	config   Config
	log      *logger.Logger
}

func NewService(repo Repository, profiles profile.Service, tx database.Transactor, config Config, log *logger.Logger) Service {
	if config.BCryptCost == 0 {
		config.BCryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		tx:       tx,
		config:   config,
		log:      log.With("component", "auth"),
	}
}

// Register creates the account and its default profile in one transaction
func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = nameFromEmail(req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{Email: req.Email, PasswordHash: string(hash), Name: req.Name}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return err
		}
		return s.profiles.CreateProfile(ctx, user.ID, user.Name)
	})
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, apperr.Conflict("User already exists", err)
		}
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID, "email", user.Email)
	return s.issue(user)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, msgInvalidCredentials, err)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, msgInvalidCredentials, err)
	}

	s.log.Info("user logged in", "user_id", user.ID)
	return s.issue(user)
}

func (s *service) issue(user *User) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email, s.config.AccessTokenExpiry, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int(s.config.AccessTokenExpiry.Seconds()),
		TokenType:   "Bearer",
	}, nil
}

func (s *service) ValidateToken(_ context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid or expired token", err)
	}
	if claims.Type != "access" {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid token type", nil)
	}
	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperr.NotFound("User not found", err)
	}
	return u, err
}

func (s *service) UpdateContact(ctx context.Context, userID int64, req *UpdateContactRequest) (*User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Phone != nil {
		p := strings.TrimSpace(*req.Phone)
		req.Phone = &p
	}

	u, err := s.repo.UpdateContact(ctx, userID, req.Phone, req.PushToken)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperr.NotFound("User not found", err)
	}
	return u, err
}

// socialPlatforms are the networks a creator can verify with
var socialPlatforms = map[string]bool{"instagram": true, "tiktok": true, "youtube": true, "twitter": true}

// Verify marks the account verified by one method. An email must be the
// account's own address.
func (s *service) Verify(ctx context.Context, userID int64, req *VerifyRequest) (*Verification, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := VerificationDetail{}
	switch req.Method {
	case "email":
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			return nil, apperr.Validation("Email is required")
		}
		if email != strings.ToLower(u.Email) {
			return nil, apperr.Validation("Email does not match your account")
		}
		detail["email"] = email
	case "phone":
		phone := strings.TrimSpace(req.Phone)
		if err := utils.Validator().Var(phone, "required,e164"); err != nil {
			return nil, apperr.Validation("Phone must be a valid phone number (E.164 format)")
		}
		detail["phone"] = phone
	case "social":
		platform := strings.ToLower(strings.TrimSpace(req.Platform))
		if !socialPlatforms[platform] {
			return nil, apperr.Validation("Platform must be one of [instagram tiktok youtube twitter]")
		}
		handle := strings.TrimPrefix(strings.TrimSpace(req.Handle), "@")
		if handle == "" {
			return nil, apperr.Validation("Handle is required")
		}
		detail["platform"] = platform
		detail["handle"] = handle
	}

	now := time.Now().UTC()
	v := &Verification{Status: VerificationVerified, Method: req.Method, Detail: detail, VerifiedAt: &now}
	if err := s.repo.SaveVerification(ctx, userID, v); err != nil {
		return nil, err
	}
	s.log.Info("account verified", "user_id", userID, "method", req.Method)
	return v, nil
}

func (s *service) GetVerification(ctx context.Context, userID int64) (*Verification, error) {
	v, err := s.repo.GetVerification(ctx, userID)
	if errors.Is(err, ErrNotVerified) {
		return &Verification{Status: VerificationUnverified}, nil
	}
	return v, err
}

// nameFromEmail turns "jane.doe_x@mail.com" into "Jane Doe X"
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.FieldsFunc(local, func(r rune) bool { return r == '.' || r == '_' })
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
