package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/commute-weather/internal/weather"
)

const (
	defaultInterval = 30 * time.Minute
	jobTimeout      = 30 * time.Second
)

// Refresher builds and stores a report for one location.
type Refresher interface {
	FetchAndStore(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically refreshes reports for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	locations []weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, refresher Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval < time.Minute {
		interval = defaultInterval
	}

	_, err := s.scheduler.Every(interval).Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) refreshAll() {
	log.Println("scheduler: running forecast refresh job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc weather.Location) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			if err := s.refresher.FetchAndStore(ctx, loc); err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", loc.Key(), err)
			}
		}(loc)
	}
	wg.Wait()
	log.Println("scheduler: completed forecast refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
