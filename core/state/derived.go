package state

import "github.com/powerclass/marketctl/core/model"

// Derived read accessors. These are pure projections over the cached arrays
// and are only as fresh as the last poll that populated them.

// CurrentYearBids returns cached bids for the session's current year. With no
// session stored it returns nil.
func (s *Store) CurrentYearBids() []model.YearlyBid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	var out []model.YearlyBid
	for _, b := range s.bids {
		if b.Year == s.session.CurrentYear {
			out = append(out, b)
		}
	}
	return out
}

// PlantsByStatus returns cached plants with the given status.
func (s *Store) PlantsByStatus(status model.PlantStatus) []model.PowerPlant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.PowerPlant
	for _, p := range s.plants {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// TotalCapacity sums capacity in MW over operating plants only.
func (s *Store) TotalCapacity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.plants {
		if p.Status == model.StatusOperating {
			total += p.CapacityMW
		}
	}
	return total
}

// PortfolioMix groups operating plants by technology and sums capacity per
// type.
func (s *Store) PortfolioMix() map[model.PlantType]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mix := make(map[model.PlantType]float64)
	for _, p := range s.plants {
		if p.Status == model.StatusOperating {
			mix[p.PlantType] += p.CapacityMW
		}
	}
	return mix
}
