package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/dto"
	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/busy"
)

const dashboardCacheKey = "dashboard:summary"

type dashboardNotificationFeed interface {
	Recent(ctx context.Context, limit int) ([]models.Notification, error)
}

type dashboardGradeFeed interface {
	Recent(ctx context.Context, limit int) ([]models.Grade, error)
}

type dashboardCourseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardConfig tunes the home feed aggregation.
type DashboardConfig struct {
	RecentLimit int
	CacheTTL    time.Duration
}

// DashboardService aggregates the home page feeds. The two sections are
// fetched concurrently and settled independently: one failing section does
// not blank the other.
type DashboardService struct {
	notifications dashboardNotificationFeed
	grades        dashboardGradeFeed
	courses       dashboardCourseLister
	cache         dashboardCache
	tracker       *busy.Tracker
	cfg           DashboardConfig
	logger        *zap.Logger
}

// NewDashboardService constructs the dashboard service. cache may be nil.
func NewDashboardService(
	notifications dashboardNotificationFeed,
	grades dashboardGradeFeed,
	courses dashboardCourseLister,
	cache dashboardCache,
	tracker *busy.Tracker,
	cfg DashboardConfig,
	logger *zap.Logger,
) *DashboardService {
	if tracker == nil {
		tracker = busy.NewTracker()
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 3
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		notifications: notifications,
		grades:        grades,
		courses:       courses,
		cache:         cache,
		tracker:       tracker,
		cfg:           cfg,
		logger:        logger,
	}
}

// Summary loads the recent-notification and recent-grade feeds. The busy
// tracker is held for the entire aggregation, across both fetches.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	summary := &dto.DashboardSummary{
		RecentNotifications: []models.Notification{},
		RecentGrades:        []dto.RecentGrade{},
	}
	err := s.tracker.Track(func() error {
		if s.cache != nil {
			var cached dto.DashboardSummary
			if err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil {
				*summary = cached
				return nil
			}
		}

		var (
			wg            sync.WaitGroup
			notifications []models.Notification
			recentGrades  []dto.RecentGrade
			notifErr      error
			gradesErr     error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			notifications, notifErr = s.notifications.Recent(ctx, s.cfg.RecentLimit)
		}()
		go func() {
			defer wg.Done()
			recentGrades, gradesErr = s.loadRecentGrades(ctx)
		}()
		wg.Wait()

		if notifErr != nil {
			s.logger.Error("dashboard notifications fetch failed", zap.Error(notifErr))
			summary.NotificationsError = "could not load notifications"
		} else {
			summary.RecentNotifications = notifications
		}
		if gradesErr != nil {
			s.logger.Error("dashboard grades fetch failed", zap.Error(gradesErr))
			summary.GradesError = "could not load recent grades"
		} else {
			summary.RecentGrades = recentGrades
		}

		if s.cache != nil && notifErr == nil && gradesErr == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure(err, "failed to build dashboard")
	}
	return summary, nil
}

// InFlight reports how many dashboard aggregations are currently running.
func (s *DashboardService) InFlight() int64 {
	return s.tracker.InFlight()
}

func (s *DashboardService) loadRecentGrades(ctx context.Context) ([]dto.RecentGrade, error) {
	grades, err := s.grades.Recent(ctx, s.cfg.RecentLimit)
	if err != nil {
		return nil, err
	}
	names := map[models.CourseID]string{}
	if courses, err := s.courses.List(ctx); err == nil {
		for _, course := range courses {
			names[course.ID] = course.Name
		}
	} else {
		s.logger.Warn("could not resolve course names for dashboard", zap.Error(err))
	}
	recent := make([]dto.RecentGrade, 0, len(grades))
	for _, grade := range grades {
		name, ok := names[grade.CourseID]
		if !ok {
			name = grade.CourseID.String()
		}
		recent = append(recent, dto.RecentGrade{Grade: grade, CourseName: name})
	}
	return recent, nil
}
