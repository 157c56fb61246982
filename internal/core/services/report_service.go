package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/electoral/internal/core/domain"
	"github.com/vncsmyrnk/electoral/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

type reportService struct {
	repo  ports.ReportRepository
	clock Clock
}

func NewReportService(repo ports.ReportRepository, clock Clock) ports.ReportService {
	return &reportService{
		repo:  repo,
		clock: clock,
	}
}

// General runs the aggregate queries concurrently and assembles them.
func (s *reportService) General(ctx context.Context) (*domain.GeneralReport, error) {
	var (
		totals     domain.Totals
		byLocation []domain.LocationTally
		byCategory []domain.CategoryTally
		bySchedule []domain.BucketTally
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.Totals(ctx)
		if err != nil {
			return fmt.Errorf("failed to count voters: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		byLocation, err = s.ByLocation(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		byCategory, err = s.ByCategory(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		bySchedule, err = s.BySchedule(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.GeneralReport{
		RegisteredVoters: totals.RegisteredVoters,
		VotedVoters:      totals.VotedVoters,
		Pending:          max(totals.RegisteredVoters-totals.VotedVoters, 0),
		Participation:    domain.Participation(totals.VotedVoters, totals.RegisteredVoters),
		ByLocation:       byLocation,
		ByCategory:       byCategory,
		BySchedule:       bySchedule,
	}, nil
}

func (s *reportService) ByStation(ctx context.Context) ([]domain.StationTally, error) {
	tallies, err := s.repo.ByStation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to tally stations: %w", err)
	}
	return tallies, nil
}

// ByLocation reports each location's share of all valid votes.
func (s *reportService) ByLocation(ctx context.Context) ([]domain.LocationTally, error) {
	tallies, err := s.repo.ByLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to tally locations: %w", err)
	}

	total := 0
	for _, t := range tallies {
		total += t.Votes
	}
	for i := range tallies {
		tallies[i].Participation = domain.Participation(tallies[i].Votes, total)
	}
	return tallies, nil
}

func (s *reportService) BySchedule(ctx context.Context) ([]domain.BucketTally, error) {
	hours, err := s.repo.ByHour(ctx, s.clock.Location().String())
	if err != nil {
		return nil, fmt.Errorf("failed to tally hours: %w", err)
	}
	return domain.Bucketize(hours), nil
}

func (s *reportService) ByCategory(ctx context.Context) ([]domain.CategoryTally, error) {
	tallies, err := s.repo.ByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to tally categories: %w", err)
	}
	for i := range tallies {
		t := &tallies[i]
		t.Pending = max(t.Registered-t.Voted, 0)
		t.Participation = domain.Participation(t.Voted, t.Registered)
	}
	return tallies, nil
}
