package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/powerclass/marketctl/core/model"
	"github.com/powerclass/marketctl/infra/rest"
)

// DashboardView aggregates the per-session overview endpoints into one
// snapshot for display.
type DashboardView struct {
	Dashboard rest.Dashboard
	Utilities []rest.UtilitySummary
	Results   []model.MarketResult
}

// FetchDashboard loads the dashboard, the participant list and the market
// results concurrently. The first failure cancels the remaining calls.
func (s *Service) FetchDashboard(ctx context.Context) (*DashboardView, error) {
	sess := s.Store.CurrentSession()
	if sess == nil {
		return nil, fmt.Errorf("no session selected")
	}

	var view DashboardView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.API.Dashboard(ctx, sess.ID)
		if err != nil {
			return err
		}
		view.Dashboard = d
		return nil
	})
	g.Go(func() error {
		utils, err := s.API.ListUtilities(ctx, sess.ID)
		if err != nil {
			return err
		}
		view.Utilities = utils
		return nil
	})
	g.Go(func() error {
		results, err := s.API.ListMarketResults(ctx, sess.ID, 0)
		if err != nil {
			return err
		}
		view.Results = results
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.handleSessionErr(err)
	}
	s.Store.AddMarketResults(view.Results)
	return &view, nil
}
