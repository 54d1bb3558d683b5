package admin

import (
	"context"

	"github.com/rpupo63/studio-site-backend/models"
	"golang.org/x/sync/errgroup"
)

type OrderSource interface {
	FindAll(ctx context.Context) ([]models.Order, error)
	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
}

type MessageSource interface {
	FindAll(ctx context.Context) ([]models.ContactMessage, error)
	CountUnread(ctx context.Context) (int64, error)
}

type ReviewSource interface {
	FindAll(ctx context.Context) ([]models.Review, error)
	CountPending(ctx context.Context) (int64, error)
}

type SectionSource interface {
	Sections() []models.ContentSection
	Err() string
}

type ProjectSource interface {
	Refresh(ctx context.Context) error
	Projects() []models.ProjectWithStats
}

type UserSource interface {
	FindAll(ctx context.Context) ([]models.UserRole, error)
}

// Sources are the collaborators the management panels read from.
type Sources struct {
	Orders   OrderSource
	Messages MessageSource
	Reviews  ReviewSource
	Sections SectionSource
	Projects ProjectSource
	Users    UserSource
}

type Dashboard struct {
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
	TotalOrders    int64                        `json:"total_orders"`
	UnreadMessages int64                        `json:"unread_messages"`
	PendingReviews int64                        `json:"pending_reviews"`
	Projects       int                          `json:"projects"`
	Sections       int                          `json:"sections"`
}

type ContentPanel struct {
	Sections []models.ContentSection `json:"sections"`
	Error    string                  `json:"error,omitempty"`
}

// AnalyticsPanel carries the analytics schema with nothing collected.
// No visitor pipeline feeds this service.
type AnalyticsPanel struct {
	Available bool                 `json:"available"`
	Data      models.AnalyticsData `json:"data"`
}

// PanelFactories builds the lazily mounted panel for every tab.
func PanelFactories(src Sources) map[Tab]PanelFactory {
	return map[Tab]PanelFactory{
		TabDashboard: func() Panel { return PanelFunc(src.dashboard) },
		TabOrders: func() Panel {
			return PanelFunc(func(ctx context.Context) (interface{}, error) { return src.Orders.FindAll(ctx) })
		},
		TabMessages: func() Panel {
			return PanelFunc(func(ctx context.Context) (interface{}, error) { return src.Messages.FindAll(ctx) })
		},
		TabContent: func() Panel {
			return PanelFunc(func(context.Context) (interface{}, error) {
				return ContentPanel{Sections: src.Sections.Sections(), Error: src.Sections.Err()}, nil
			})
		},
		TabProjects: func() Panel {
			return PanelFunc(func(ctx context.Context) (interface{}, error) {
				if err := src.Projects.Refresh(ctx); err != nil {
					return nil, err
				}
				return src.Projects.Projects(), nil
			})
		},
		TabReviews: func() Panel {
			return PanelFunc(func(ctx context.Context) (interface{}, error) { return src.Reviews.FindAll(ctx) })
		},
		TabUsers: func() Panel {
			return PanelFunc(func(ctx context.Context) (interface{}, error) { return src.Users.FindAll(ctx) })
		},
		TabAnalytics: func() Panel {
			return PanelFunc(func(context.Context) (interface{}, error) {
				return AnalyticsPanel{Data: models.AnalyticsData{
					ByCountry:  map[string]int{},
					ByCity:     map[string]int{},
					ByDevice:   map[string]int{},
					ByReferrer: map[string]int{},
					ByHour:     map[int]int{},
					Sessions:   []models.UserSession{},
				}}, nil
			})
		},
	}
}

func (src Sources) dashboard(ctx context.Context) (interface{}, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := src.Orders.CountByStatus(gctx)
		d.OrdersByStatus = counts
		return err
	})
	g.Go(func() error {
		n, err := src.Messages.CountUnread(gctx)
		d.UnreadMessages = n
		return err
	})
	g.Go(func() error {
		n, err := src.Reviews.CountPending(gctx)
		d.PendingReviews = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range d.OrdersByStatus {
		d.TotalOrders += n
	}
	d.Projects = len(src.Projects.Projects())
	d.Sections = len(src.Sections.Sections())
	return d, nil
}
