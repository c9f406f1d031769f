// Package daemon provides the long-running background service that tracks
// today's intake and serves it over HTTP.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/pipeline"
	"github.com/theirongolddev/fivehundred/internal/store"
	"github.com/theirongolddev/fivehundred/internal/tracker"
)

// Config controls the daemon runtime behavior.
type Config struct {
	// WatchDir, when set, triggers a poll whenever a file in it changes.
	WatchDir     string
	Days         int
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the state published in status and event payloads.
type Snapshot struct {
	At           time.Time `json:"at"`
	Date         string    `json:"date"`
	Onboarded    bool      `json:"onboarded"`
	Calories     float64   `json:"calories"`
	CalorieGoal  int       `json:"calorie_goal"`
	Protein      float64   `json:"protein_g"`
	ProteinGoal  int       `json:"protein_goal_g"`
	BMR          int       `json:"bmr"`
	Steps        int       `json:"steps"`
	StepCalories int       `json:"step_calories"`
	Entries      int       `json:"entries"`
	WeightLbs    float64   `json:"weight_lbs,omitempty"`

	RangeDays       int     `json:"range_days"`
	RangeLoggedDays int     `json:"range_logged_days"`
	RangeWithinGoal int     `json:"range_within_goal"`
	RangeAvgCal     float64 `json:"range_avg_calories"`
}

// Delta captures what changed between polls on the same day.
type Delta struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Steps    int     `json:"steps"`
	Entries  int     `json:"entries"`
	Weight   float64 `json:"weight_lbs"`
}

func (d Delta) isZero() bool {
	return d.Calories == 0 &&
		d.Protein == 0 &&
		d.Steps == 0 &&
		d.Entries == 0 &&
		d.Weight == 0
}

// Event is emitted whenever the snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventLedgerDelta = "ledger_delta"
	EventDayRollover = "day_rollover"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	WatchDir        string    `json:"watch_dir,omitempty"`
	Days            int       `json:"days"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	st  store.Store
	log *zap.Logger
	now func() time.Time

	registry *prometheus.Registry
	metrics  *metrics

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from st.
func New(cfg Config, st store.Store, log *zap.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8750"
	}
	if cfg.Days < 1 {
		cfg.Days = 7
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	return &Service{
		cfg:       cfg,
		st:        st,
		log:       log,
		now:       time.Now,
		registry:  reg,
		metrics:   newMetrics(reg),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	if s.cfg.WatchDir != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			s.log.Warn("file watcher unavailable, polling only", zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
			if err := watcher.Add(s.cfg.WatchDir); err != nil {
				s.log.Warn("watching data dir", zap.String("dir", s.cfg.WatchDir), zap.Error(err))
			} else {
				fsEvents, fsErrors = watcher.Events, watcher.Errors
			}
		}
	}

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)
	s.log.Info("daemon started", zap.String("addr", s.cfg.Addr), zap.Duration("interval", s.cfg.Interval))

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case ev := <-fsEvents:
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				s.mu.RLock()
				recent := s.now().Sub(s.lastPollAt) < time.Second
				s.mu.RUnlock()
				if !recent {
					s.pollOnce(ctx)
				}
			}
		case err := <-fsErrors:
			s.log.Warn("file watcher error", zap.Error(err))
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.now()
	snap, err := s.load(ctx, now)
	s.metrics.polls.Inc()
	if err != nil {
		s.metrics.pollErrors.Inc()
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("daemon poll error", zap.Error(err))
		return
	}
	s.metrics.observe(snap)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	switch {
	case !prevExists:
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: now, Snapshot: snap}
		publish = true
	case prev.Date != snap.Date:
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventDayRollover, Timestamp: now, Snapshot: snap}
		publish = true
	default:
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{ID: s.nextEventID, Type: EventLedgerDelta, Timestamp: now, Snapshot: snap, Delta: delta}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("publishing event", zap.String("type", ev.Type), zap.Int64("id", ev.ID))
		s.publishEvent(ev)
	}
}

func (s *Service) load(ctx context.Context, now time.Time) (Snapshot, error) {
	tr, err := tracker.Load(ctx, s.st, tracker.WithClock(func() time.Time { return now }), tracker.WithLogger(s.log))
	if err != nil {
		return Snapshot{}, err
	}
	since := now.AddDate(0, 0, -(s.cfg.Days - 1))
	res, err := pipeline.LoadDays(ctx, s.st, since, now, s.log, nil)
	if err != nil {
		return Snapshot{}, err
	}
	profile, _ := tr.Profile()
	days := pipeline.AggregateDays(res.Days, res.Weights, profile, since, now)
	return snapshotFrom(tr.Summary(), pipeline.Aggregate(days), now), nil
}

func snapshotFrom(sum model.DaySummary, rng model.SummaryStats, at time.Time) Snapshot {
	snap := Snapshot{
		At:              at,
		Date:            sum.Date,
		Onboarded:       sum.Onboarded,
		Calories:        sum.Totals.Calories,
		CalorieGoal:     sum.Goals.Calories,
		Protein:         sum.Totals.Protein,
		ProteinGoal:     sum.Goals.Protein,
		BMR:             sum.Goals.BMR,
		Steps:           sum.Steps,
		StepCalories:    sum.Goals.StepCalories,
		Entries:         sum.Entries,
		RangeDays:       rng.Days,
		RangeLoggedDays: rng.LoggedDays,
		RangeWithinGoal: rng.DaysWithinGoal,
		RangeAvgCal:     rng.AvgCalories,
	}
	if sum.LastWeight != nil {
		snap.WeightLbs = sum.LastWeight.Weight
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Calories: curr.Calories - prev.Calories,
		Protein:  curr.Protein - prev.Protein,
		Steps:    curr.Steps - prev.Steps,
		Entries:  curr.Entries - prev.Entries,
		Weight:   curr.WeightLbs - prev.WeightLbs,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		WatchDir:        s.cfg.WatchDir,
		Days:            s.cfg.Days,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
