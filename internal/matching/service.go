// internal/matching/service.go

package matching

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rikacare/rika-backend/internal/catalog"
	"github.com/rikacare/rika-backend/internal/common/logger"
	"github.com/rikacare/rika-backend/internal/profile"
)

// RecommendedProduct is a product annotated with its match for the caller
type RecommendedProduct struct {
	*catalog.Product
	MatchScore      int       `json:"matchScore"`
	MatchPercentage int       `json:"matchPercentage"`
	WhyRecommended  string    `json:"whyRecommended"`
	Reasons         []string  `json:"reasons"`
	ScoreBreakdown  Breakdown `json:"scoreBreakdown"`
}

type Recommendations struct {
	Products      []RecommendedProduct `json:"products"`
	TotalProducts int                  `json:"totalProducts"`
	FilteredCount int                  `json:"filteredCount"`
}

// Service produces scored recommendations for a user
type Service interface {
	Recommend(ctx context.Context, userID int64, cleanOnly bool) (*Recommendations, error)
	ProductDetail(ctx context.Context, userID, productID int64) (*RecommendedProduct, error)
	// Top returns the n best matches without counting a recommendation view
	Top(ctx context.Context, userID int64, n int) ([]RecommendedProduct, error)
}

type service struct {
	profiles  profile.Service
	catalog   catalog.Repository
	products  catalog.Service
	fetchSize int
	limit     int
	log       *logger.Logger
}

func NewService(profiles profile.Service, repo catalog.Repository, products catalog.Service, fetchSize, limit int, log *logger.Logger) Service {
	return &service{
		profiles:  profiles,
		catalog:   repo,
		products:  products,
		fetchSize: fetchSize,
		limit:     limit,
		log:       log.With("component", "matching"),
	}
}

func (s *service) Recommend(ctx context.Context, userID int64, cleanOnly bool) (*Recommendations, error) {
	start := time.Now()

	p, products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc := ContextFromProfile(p)
	ranked, filtered := rank(products, uc, Options{CleanOnly: cleanOnly, Limit: s.limit})

	// The view counter is informational; a failed increment does not fail the request.
	if err := s.profiles.RecordRecommendationView(ctx, userID); err != nil {
		s.log.Warn("failed to record recommendation view", "user_id", userID, "error", err)
	}

	out := &Recommendations{
		Products:      make([]RecommendedProduct, 0, len(ranked)),
		TotalProducts: len(products),
		FilteredCount: filtered,
	}
	for _, r := range ranked {
		out.Products = append(out.Products, annotate(r.Product, r.Result, Summary(r.Result.Reasons)))
	}

	recordRecommendations(cleanOnly)
	recordRankDuration(time.Since(start))
	s.log.Debug("recommendations ranked", "user_id", userID, "total", len(products), "filtered", filtered, "returned", len(out.Products))
	return out, nil
}

func (s *service) Top(ctx context.Context, userID int64, n int) ([]RecommendedProduct, error) {
	p, products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	ranked := Rank(products, ContextFromProfile(p), Options{Limit: n})
	out := make([]RecommendedProduct, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, annotate(r.Product, r.Result, Summary(r.Result.Reasons)))
	}
	return out, nil
}

// load fetches the profile and the catalog page concurrently
func (s *service) load(ctx context.Context, userID int64) (*profile.UserProfile, []*catalog.Product, error) {
	var (
		p        *profile.UserProfile
		products []*catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.profiles.GetUserProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.catalog.GetAllProducts(gctx, s.fetchSize)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return p, products, nil
}

func (s *service) ProductDetail(ctx context.Context, userID, productID int64) (*RecommendedProduct, error) {
	p, err := s.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	uc := ContextFromProfile(p)
	res := Score(product, uc)
	productDetailViews.Inc()

	detail := annotate(product, res, WhyRecommended(product, res, uc))
	return &detail, nil
}

func annotate(p *catalog.Product, res MatchResult, why string) RecommendedProduct {
	return RecommendedProduct{
		Product:         p,
		MatchScore:      res.Total,
		MatchPercentage: res.Total,
		WhyRecommended:  why,
		Reasons:         res.Reasons,
		ScoreBreakdown:  res.Breakdown,
	}
}
