// internal/analysis/service.go

package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/rikacare/rika-backend/internal/common/apperr"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/profile"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type Service interface {
	AnalyzeSkin(ctx context.Context, userID int64, req *SkinQuizRequest) (*Analysis, error)
	AnalyzeHair(ctx context.Context, userID int64, req *HairQuizRequest) (*Analysis, error)
	CheckIngredients(ctx context.Context, userID int64, req *IngredientCheckRequest) (*SafetyReport, error)
	History(ctx context.Context, userID int64, kind Kind, limit int) ([]*Analysis, error)
	Get(ctx context.Context, userID, analysisID int64) (*Analysis, error)
}

type service struct {
	repo     Repository
	profiles profile.Service
	log      *logger.Logger
}

func NewService(repo Repository, profiles profile.Service, log *logger.Logger) Service {
	return &service{repo: repo, profiles: profiles, log: log.With("component", "analysis")}
}

func (s *service) AnalyzeSkin(ctx context.Context, userID int64, req *SkinQuizRequest) (*Analysis, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	answers := skinAnswers{
		skinType:  req.SkinType,
		concerns:  req.Concerns,
		symptoms:  req.Symptoms,
		age:       req.Age,
		allergies: req.Allergies,
	}
	if answers.skinType == "" {
		answers.skinType = string(p.SkinType)
	}
	if answers.skinType == "" {
		return nil, apperr.Validation("Skin type is required")
	}
	if answers.concerns == nil {
		answers.concerns = p.SkinConcerns
	}
	if answers.allergies == nil {
		answers.allergies = p.IngredientSensitivities
	}

	return s.store(ctx, userID, KindSkin, skinResult(answers))
}

func (s *service) AnalyzeHair(ctx context.Context, userID int64, req *HairQuizRequest) (*Analysis, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	hairType := req.HairType
	if hairType == "" {
		p, err := s.profiles.GetUserProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		hairType = string(p.HairType)
	}
	if hairType == "" {
		return nil, apperr.Validation("Hair type is required")
	}

	return s.store(ctx, userID, KindHair, hairResult(hairType, req.HairTexture))
}

func (s *service) store(ctx context.Context, userID int64, kind Kind, res Result) (*Analysis, error) {
	a := &Analysis{UserID: userID, Kind: kind, Method: MethodQuiz, Result: res}
	if err := s.repo.CreateAnalysis(ctx, a); err != nil {
		return nil, err
	}

	analysesCompleted.WithLabelValues(string(kind), string(res.Outcome)).Inc()
	if res.Referral != nil {
		s.log.Info("analysis referred to professional", "user_id", userID, "type", kind, "specialist", res.Referral.Specialist)
	}
	return a, nil
}

func (s *service) CheckIngredients(ctx context.Context, userID int64, req *IngredientCheckRequest) (*SafetyReport, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return checkIngredients(req.Ingredients, p.IngredientSensitivities, string(p.SkinType), req.Age), nil
}

func (s *service) History(ctx context.Context, userID int64, kind Kind, limit int) ([]*Analysis, error) {
	if kind != "" && kind != KindSkin && kind != KindHair {
		return nil, apperr.Validation(fmt.Sprintf("unknown analysis type %q", kind))
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.ListAnalyses(ctx, userID, kind, min(limit, MaxHistoryLimit))
}

func (s *service) Get(ctx context.Context, userID, analysisID int64) (*Analysis, error) {
	a, err := s.repo.GetAnalysis(ctx, analysisID, userID)
	if err != nil {
		if errors.Is(err, ErrAnalysisNotFound) {
			return nil, apperr.NotFound("Analysis not found", err)
		}
		return nil, err
	}
	return a, nil
}
