package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type ProjectLister interface {
	FindAllOrdered(ctx context.Context) ([]models.Project, error)
}

type ApprovedReviewLister interface {
	FindApproved(ctx context.Context) ([]models.Review, error)
}

// ProjectCatalog caches projects joined with their approved review statistics.
// It is refreshed on demand only.
type ProjectCatalog struct {
	projects ProjectLister
	reviews  ApprovedReviewLister
	logger   zerolog.Logger

	mu          sync.RWMutex
	items       []models.ProjectWithStats
	approved    []models.Review
	lastErr     string
	refreshedAt time.Time
}

func NewProjectCatalog(projects ProjectLister, reviews ApprovedReviewLister) *ProjectCatalog {
	return &ProjectCatalog{
		projects: projects,
		reviews:  reviews,
		logger:   log.With().Str("component", "projectCatalog").Logger(),
	}
}

// Refresh fetches projects and approved reviews concurrently and rebuilds the aggregates.
// On failure the previous list is kept.
func (c *ProjectCatalog) Refresh(ctx context.Context) error {
	var projects []models.Project
	var reviews []models.Review

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = c.projects.FindAllOrdered(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = c.reviews.FindApproved(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		c.logger.Error().Err(err).Msg("Failed to refresh project catalog")
		return errs.NewBackendUnavailableError("fetch projects", err)
	}

	items := Aggregate(projects, reviews)
	approved := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.IsApproved {
			approved = append(approved, r)
		}
	}

	c.mu.Lock()
	c.items = items
	c.approved = approved
	c.lastErr = ""
	c.refreshedAt = time.Now().UTC()
	c.mu.Unlock()

	c.logger.Debug().Int("projects", len(items)).Int("reviews", len(approved)).Msg("Project catalog refreshed")
	return nil
}

// EnsureLoaded refreshes the catalog if it has never loaded successfully.
func (c *ProjectCatalog) EnsureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := !c.refreshedAt.IsZero()
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *ProjectCatalog) Projects() []models.ProjectWithStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.ProjectWithStats{}, c.items...)
}

// Reviews returns the approved reviews from the last refresh, newest first.
func (c *ProjectCatalog) Reviews() []models.Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Review{}, c.approved...)
}

func (c *ProjectCatalog) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *ProjectCatalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}

// Aggregate attaches review statistics to each project. Unapproved reviews are ignored.
func Aggregate(projects []models.Project, reviews []models.Review) []models.ProjectWithStats {
	ratings := make(map[string][]int)
	for _, r := range reviews {
		if !r.IsApproved || r.ProjectID == nil {
			continue
		}
		key := r.ProjectID.String()
		ratings[key] = append(ratings[key], r.Rating)
	}

	out := make([]models.ProjectWithStats, 0, len(projects))
	for _, p := range projects {
		out = append(out, models.ProjectWithStats{
			Project:      p,
			ProjectStats: Stats(ratings[p.ID.String()]),
		})
	}
	return out
}

// Stats computes review aggregates for one project's approved ratings.
func Stats(ratings []int) models.ProjectStats {
	stats := models.ProjectStats{ReviewCount: len(ratings)}
	for _, r := range ratings {
		if r == 5 {
			stats.FiveStarCount++
		}
	}
	stats.AverageRating = AverageRating(ratings)
	return stats
}

// AverageRating sums ratings scaled by ten, so (50+50+40)/3/10 rounds to 4.7.
// An empty set averages 0.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r * 10
	}
	return math.Round(float64(sum)/float64(len(ratings))) / 10
}
