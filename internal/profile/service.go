// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/utils"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Service defines the profile service interface
type Service interface {
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)
	CreateProfile(ctx context.Context, userID int64, displayName string) error
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*UserProfile, error)
	SetLanguage(ctx context.Context, userID int64, language string) (*UserProfile, error)
	RecordRecommendationView(ctx context.Context, userID int64) error
	SimilarUsers(ctx context.Context, p *UserProfile) (*SimilarUsers, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new profile service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log.With("component", "profile")}
}

// GetUserProfile returns the profile, or NotFound for an unknown user
func (s *service) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, apperr.NotFound("User not found", err)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) CreateProfile(ctx context.Context, userID int64, displayName string) error {
	return s.repo.CreateProfile(ctx, NewDefaultProfile(userID, displayName))
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*UserProfile, error) {
	normalizeRequest(req)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	p, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.SkinType != nil {
		st, err := ParseSkinType(*req.SkinType)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		p.SkinType = st
	}
	if req.HairType != nil {
		ht, err := ParseHairType(*req.HairType)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		p.HairType = ht
	}
	if req.SkinConcerns != nil {
		p.SkinConcerns = req.SkinConcerns
	}
	if req.HairConcerns != nil {
		p.HairConcerns = req.HairConcerns
	}
	if req.IngredientSensitivities != nil {
		p.IngredientSensitivities = req.IngredientSensitivities
	}
	if req.CleanBeautyPreference != nil {
		p.CleanBeautyPreference = *req.CleanBeautyPreference
	}

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info("profile updated", "user_id", userID, "skin_type", p.SkinType, "hair_type", p.HairType)
	return s.GetUserProfile(ctx, userID)
}

func (s *service) SetLanguage(ctx context.Context, userID int64, language string) (*UserProfile, error) {
	req := LanguageRequest{Language: strings.ToLower(strings.TrimSpace(language))}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	p, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Language = req.Language
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	return p, nil
}

func (s *service) RecordRecommendationView(ctx context.Context, userID int64) error {
	return s.repo.IncrementRecommendationViews(ctx, userID)
}

// SimilarUsers counts other members with p's skin and hair type
func (s *service) SimilarUsers(ctx context.Context, p *UserProfile) (*SimilarUsers, error) {
	return s.repo.CountSimilar(ctx, p.UserID, p.SkinType, p.HairType)
}

// normalizeRequest lower-cases enum values and trims, dedupes and lower-cases list entries
func normalizeRequest(req *UpdateProfileRequest) {
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		req.DisplayName = &name
	}
	if req.SkinType != nil {
		v := strings.ToLower(strings.TrimSpace(*req.SkinType))
		req.SkinType = &v
	}
	if req.HairType != nil {
		v := strings.ToLower(strings.TrimSpace(*req.HairType))
		req.HairType = &v
	}
	req.SkinConcerns = normalizeList(req.SkinConcerns)
	req.HairConcerns = normalizeList(req.HairConcerns)
	req.IngredientSensitivities = normalizeList(req.IngredientSensitivities)
}

func normalizeList(in []string) []string {
	if in == nil {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
