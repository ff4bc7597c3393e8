package store

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/services"
)

// CarSlice tracks listing searches and the selected listing. Concurrent
// fetches are neither deduplicated nor cancelled; whichever resolves last
// decides the final state.
type CarSlice struct {
	mu     sync.RWMutex
	state  CarState
	cars   services.CarService
	notify func()
}

func (s *CarSlice) State() CarState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *CarSlice) update(fn func(*CarState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

// FetchCars searches listings with filter. On success Items is replaced
// wholesale; on failure Items is cleared and Error holds a display message.
// The error is also returned.
func (s *CarSlice) FetchCars(ctx context.Context, filter *models.ListingFilter) error {
	s.update(func(st *CarState) {
		st.Status = StatusLoading
		st.Error = ""
	})

	items, err := s.cars.List(ctx, filter)

	s.update(func(st *CarState) {
		if err != nil {
			st.Status = StatusFailed
			st.Items = []models.ListingSummary{}
			st.Error = client.Describe(err)
			return
		}
		st.Status = StatusLoaded
		st.Items = items
	})
	return err
}

// FetchCarDetail loads one listing into Selected. A failure clears Selected
// and sets Error; Items are left alone.
func (s *CarSlice) FetchCarDetail(ctx context.Context, id int64) error {
	s.update(func(st *CarState) {
		st.Status = StatusLoading
		st.Error = ""
	})

	d, err := s.cars.Get(ctx, id)

	s.update(func(st *CarState) {
		if err != nil {
			st.Status = StatusFailed
			st.Selected = nil
			st.Error = client.Describe(err)
			return
		}
		st.Status = StatusLoaded
		st.Selected = d
	})
	return err
}

func (s *CarSlice) SetFilter(f models.ListingFilter) {
	s.update(func(st *CarState) { st.Filter = f })
}

// SetSelected replaces Selected with a copy of d, e.g. the record an
// update returned.
func (s *CarSlice) SetSelected(d models.ListingDetail) {
	d.Images = slices.Clone(d.Images)
	s.update(func(st *CarState) { st.Selected = &d })
}

func (s *CarSlice) ClearSelectedCar() {
	s.update(func(st *CarState) { st.Selected = nil })
}

func (s *CarSlice) ClearError() {
	s.update(func(st *CarState) {
		st.Error = ""
		if st.Status == StatusFailed {
			st.Status = StatusIdle
		}
	})
}
