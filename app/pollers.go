package app

import (
	"context"
	"errors"
	"time"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/infra/rest"
)

const (
	pollSession    = "session"
	pollFinancials = "financials"
	pollPlants     = "plants"
	pollResults    = "results"
)

// startPollers subscribes the session poller, plus the utility-scoped pollers
// when an utility identity is persisted. Repeated calls are harmless, the
// manager refcounts per key and this bookkeeping keeps one reference each.
func (s *Service) startPollers() {
	cfg := s.cfg.Poll
	s.subscribe(pollSession, cfg.SessionSeconds, s.fetchSession)
	s.subscribe(pollResults, cfg.ResultsSeconds, s.fetchResults)
	if s.Store.UtilityID() != "" {
		s.subscribe(pollFinancials, cfg.FinancialsSeconds, s.fetchFinancials)
		s.subscribe(pollPlants, cfg.PlantsSeconds, s.fetchPlants)
	}
}

func (s *Service) subscribe(key string, seconds int, fetch func(context.Context) error) {
	if _, ok := s.releases[key]; ok {
		return
	}
	release, err := s.Poll.Subscribe(key, time.Duration(seconds)*time.Second, fetch)
	if err != nil {
		s.log.Errorf("subscribe %s: %v", key, err)
		return
	}
	s.releases[key] = release
}

func (s *Service) stopPollers() {
	for key, release := range s.releases {
		release()
		delete(s.releases, key)
	}
}

// fetchSession refreshes the selected session. A 404 means the session was
// deleted server side, in which case the persisted identity is dropped and a
// session_cleared change is published for observers to act on.
func (s *Service) fetchSession(ctx context.Context) error {
	sess := s.Store.CurrentSession()
	if sess == nil {
		return nil
	}
	got, err := s.API.GetSession(ctx, sess.ID)
	if err != nil {
		return s.handleSessionErr(err)
	}
	_, err = s.Store.SetCurrentSession(&got)
	return err
}

func (s *Service) fetchFinancials(ctx context.Context) error {
	sess := s.Store.CurrentSession()
	uid := s.Store.UtilityID()
	if sess == nil || uid == "" {
		return nil
	}
	fin, err := s.API.FinancialSummary(ctx, uid, sess.ID)
	if err != nil {
		return s.handleSessionErr(err)
	}
	s.Store.SetFinancials(&fin)
	return nil
}

func (s *Service) fetchPlants(ctx context.Context) error {
	sess := s.Store.CurrentSession()
	uid := s.Store.UtilityID()
	if sess == nil || uid == "" {
		return nil
	}
	plants, err := s.API.ListPlants(ctx, sess.ID, uid)
	if err != nil {
		return s.handleSessionErr(err)
	}
	s.Store.SetPlants(plants)
	return nil
}

func (s *Service) fetchResults(ctx context.Context) error {
	sess := s.Store.CurrentSession()
	if sess == nil {
		return nil
	}
	results, err := s.API.ListMarketResults(ctx, sess.ID, 0)
	if err != nil {
		return s.handleSessionErr(err)
	}
	s.Store.AddMarketResults(results)
	obs := make([]coremetrics.PriceObservation, 0, len(results))
	for _, r := range results {
		obs = append(obs, coremetrics.PriceObservation{
			SessionID:       sess.ID,
			Year:            r.Year,
			Period:          r.Period,
			ClearingPrice:   r.ClearingPrice,
			ClearedQuantity: r.ClearedQuantity,
			TotalEnergy:     r.TotalEnergy,
			Time:            r.Timestamp,
		})
	}
	if len(obs) > 0 {
		if err := s.sink.RecordPrices(obs); err != nil {
			s.log.Debugf("record prices: %v", err)
		}
	}
	return nil
}

// handleSessionErr resets the store when the server reports the session gone.
// The error is returned either way so the poll tick counts it.
func (s *Service) handleSessionErr(err error) error {
	if errors.Is(err, rest.ErrSessionNotFound) {
		if rerr := s.Store.Reset(); rerr != nil {
			s.log.Errorf("reset after lost session: %v", rerr)
		}
	}
	return err
}
