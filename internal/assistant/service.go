// internal/assistant/service.go

package assistant

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/common/utils"
	"github.com/rikacare/rika-backend/internal/matching"
	"github.com/rikacare/rika-backend/internal/points"
	"github.com/rikacare/rika-backend/internal/profile"
	"github.com/rikacare/rika-backend/internal/routines"
	"github.com/rikacare/rika-backend/internal/streaks"
)

const topSuggestions = 3

type Service interface {
	Chat(ctx context.Context, userID int64, req *ChatRequest) (*Reply, error)
}

// Sources are the services the assistant reads from
type Sources struct {
	Profiles        profile.Service
	Points          points.Service
	Streaks         streaks.Service
	Routines        routines.Service
	Recommendations matching.Service
}

type service struct {
	src Sources
	log *logger.Logger
}

func NewService(src Sources, log *logger.Logger) Service {
	return &service{src: src, log: log.With("component", "assistant")}
}

func (s *service) Chat(ctx context.Context, userID int64, req *ChatRequest) (*Reply, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	start := time.Now()
	uc, err := s.BuildContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply := Respond(req.Message, uc)
	chatMessages.WithLabelValues(string(reply.Intent)).Inc()
	chatDuration.Observe(time.Since(start).Seconds())
	return &reply, nil
}

// BuildContext loads the caller's state concurrently. Only the profile is
// required; every other source falls back to its zero value and a warning.
func (s *service) BuildContext(ctx context.Context, userID int64) (*UserContext, error) {
	p, err := s.src.Profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc := &UserContext{
		Name:          firstName(p.DisplayName),
		SkinType:      string(p.SkinType),
		SkinConcerns:  p.SkinConcerns,
		HairType:      string(p.HairType),
		HairConcerns:  p.HairConcerns,
		Sensitivities: p.IngredientSensitivities,
	}

	var g errgroup.Group
	g.Go(func() error {
		acct, err := s.src.Points.GetPoints(ctx, userID)
		if err != nil {
			s.degraded("points", userID, err)
			return nil
		}
		uc.TotalPoints = acct.TotalPoints
		return nil
	})
	g.Go(func() error {
		st, err := s.src.Streaks.GetStreak(ctx, userID)
		if err != nil {
			s.degraded("streak", userID, err)
			return nil
		}
		uc.Streak = st.CurrentStreak
		return nil
	})
	g.Go(func() error {
		done, err := s.src.Routines.CompletedToday(ctx, userID)
		if err != nil {
			s.degraded("routine", userID, err)
			return nil
		}
		uc.CompletedToday = done
		return nil
	})
	g.Go(func() error {
		top, err := s.src.Recommendations.Top(ctx, userID, topSuggestions)
		if err != nil {
			s.degraded("recommendations", userID, err)
			return nil
		}
		uc.Top = suggestions(top)
		return nil
	})
	g.Go(func() error {
		similar, err := s.src.Profiles.SimilarUsers(ctx, p)
		if err != nil {
			s.degraded("community", userID, err)
			return nil
		}
		uc.SimilarSkin = similar.SameSkinType
		uc.SimilarHair = similar.SameHairType
		return nil
	})
	_ = g.Wait()

	return uc, nil
}

func (s *service) degraded(source string, userID int64, err error) {
	contextFallbacks.WithLabelValues(source).Inc()
	s.log.Warn("chat context source unavailable", "source", source, "user_id", userID, "error", err)
}

func suggestions(products []matching.RecommendedProduct) []Suggestion {
	out := make([]Suggestion, 0, len(products))
	for _, p := range products {
		out = append(out, Suggestion{
			Name:           p.Name,
			Brand:          p.Brand,
			Category:       string(p.Category),
			WhyRecommended: p.WhyRecommended,
		})
	}
	return out
}

func firstName(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
