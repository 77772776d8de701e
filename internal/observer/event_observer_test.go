package observer

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type recordingObserver struct {
	name   string
	wg     *sync.WaitGroup
	mu     sync.Mutex
	events []CritiqueEvent
}

func (r *recordingObserver) OnEvent(ctx context.Context, event CritiqueEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	if r.wg != nil {
		r.wg.Done()
	}
}

func (r *recordingObserver) GetObserverName() string {
	return r.name
}

func (r *recordingObserver) eventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type panickingObserver struct {
	wg *sync.WaitGroup
}

func (p *panickingObserver) OnEvent(ctx context.Context, event CritiqueEvent) {
	defer p.wg.Done()
	panic("observer failure")
}

func (p *panickingObserver) GetObserverName() string {
	return "panicking_observer"
}

func waitWithTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for observers")
	}
}

func TestMetricsObserver_Snapshot(t *testing.T) {
	metrics := NewMetricsObserver()
	ctx := context.Background()

	metrics.OnEvent(ctx, CritiqueEvent{EventType: CritiqueStarted})
	metrics.OnEvent(ctx, CritiqueEvent{EventType: CritiqueStarted})
	metrics.OnEvent(ctx, CritiqueEvent{EventType: CritiqueStarted})
	metrics.OnEvent(ctx, CritiqueEvent{
		EventType:      CritiqueCompleted,
		ProcessingTime: 2 * time.Second,
		Grade:          "A",
	})
	metrics.OnEvent(ctx, CritiqueEvent{
		EventType:      CritiqueCompleted,
		ProcessingTime: 4 * time.Second,
		Grade:          "C",
	})
	metrics.OnEvent(ctx, CritiqueEvent{
		EventType:    CritiqueFailed,
		ErrorMessage: "fetch failed",
	})

	snap := metrics.Snapshot()

	if snap.TotalCritiques != 3 {
		t.Errorf("Expected 3 total critiques, got %d", snap.TotalCritiques)
	}
	if snap.SuccessfulCritiques != 2 {
		t.Errorf("Expected 2 successful critiques, got %d", snap.SuccessfulCritiques)
	}
	if snap.FailedCritiques != 1 {
		t.Errorf("Expected 1 failed critique, got %d", snap.FailedCritiques)
	}
	if snap.TotalProcessingSec != 6.0 {
		t.Errorf("Expected 6.0 total processing sec, got %f", snap.TotalProcessingSec)
	}
	if snap.AverageProcessingSec != 3.0 {
		t.Errorf("Expected 3.0 average processing sec, got %f", snap.AverageProcessingSec)
	}
	if snap.GradeCounts["A"] != 1 || snap.GradeCounts["C"] != 1 {
		t.Errorf("Expected grade counts A=1 C=1, got %v", snap.GradeCounts)
	}
}

func TestMetricsObserver_EmptySnapshot(t *testing.T) {
	snap := NewMetricsObserver().Snapshot()

	if snap.TotalCritiques != 0 || snap.SuccessfulCritiques != 0 || snap.FailedCritiques != 0 {
		t.Errorf("Expected zero counts, got %+v", snap)
	}
	if snap.AverageProcessingSec != 0 {
		t.Errorf("Expected 0 average processing sec, got %f", snap.AverageProcessingSec)
	}
	if snap.GradeCounts == nil {
		t.Error("Expected non-nil grade counts map")
	}
}

func TestMetricsObserver_IgnoresFetchEvents(t *testing.T) {
	metrics := NewMetricsObserver()
	ctx := context.Background()

	metrics.OnEvent(ctx, CritiqueEvent{EventType: ImageFetched})
	metrics.OnEvent(ctx, CritiqueEvent{EventType: ImageFetchFailed})

	snap := metrics.Snapshot()
	if snap.TotalCritiques != 0 || snap.SuccessfulCritiques != 0 || snap.FailedCritiques != 0 {
		t.Errorf("Expected fetch events to leave critique counts at zero, got %+v", snap)
	}
}

func TestMetricsObserver_SnapshotIsIsolated(t *testing.T) {
	metrics := NewMetricsObserver()
	metrics.OnEvent(context.Background(), CritiqueEvent{
		EventType: CritiqueCompleted,
		Grade:     "B",
	})

	first := metrics.Snapshot()
	first.GradeCounts["B"] = 99

	second := metrics.Snapshot()
	if second.GradeCounts["B"] != 1 {
		t.Errorf("Expected snapshot map to be a copy, got B=%d", second.GradeCounts["B"])
	}
}

func TestEventPublisher_NotifiesAllObservers(t *testing.T) {
	publisher := NewEventPublisher()

	var wg sync.WaitGroup
	wg.Add(2)
	first := &recordingObserver{name: "first", wg: &wg}
	second := &recordingObserver{name: "second", wg: &wg}

	publisher.Subscribe(first)
	publisher.Subscribe(second)

	event := CritiqueEvent{
		EventType: CritiqueStarted,
		Timestamp: time.Now(),
		Source:    "sunset.jpg",
	}
	publisher.NotifyObservers(context.Background(), event)
	waitWithTimeout(t, &wg)

	if first.eventCount() != 1 {
		t.Errorf("Expected first observer to receive 1 event, got %d", first.eventCount())
	}
	if second.eventCount() != 1 {
		t.Errorf("Expected second observer to receive 1 event, got %d", second.eventCount())
	}

	first.mu.Lock()
	got := first.events[0]
	first.mu.Unlock()
	if got.EventType != CritiqueStarted || got.Source != "sunset.jpg" {
		t.Errorf("Expected delivered event to match, got %+v", got)
	}
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher()

	var wg sync.WaitGroup
	kept := &recordingObserver{name: "kept", wg: &wg}
	removed := &recordingObserver{name: "removed"}

	publisher.Subscribe(kept)
	publisher.Subscribe(removed)
	publisher.Unsubscribe(removed)

	wg.Add(1)
	publisher.NotifyObservers(context.Background(), CritiqueEvent{EventType: CritiqueCompleted})
	waitWithTimeout(t, &wg)

	if kept.eventCount() != 1 {
		t.Errorf("Expected kept observer to receive 1 event, got %d", kept.eventCount())
	}
	if removed.eventCount() != 0 {
		t.Errorf("Expected removed observer to receive 0 events, got %d", removed.eventCount())
	}
}

func TestEventPublisher_RecoversFromPanickingObserver(t *testing.T) {
	publisher := NewEventPublisher()

	var wg sync.WaitGroup
	wg.Add(2)
	publisher.Subscribe(&panickingObserver{wg: &wg})
	healthy := &recordingObserver{name: "healthy", wg: &wg}
	publisher.Subscribe(healthy)

	publisher.NotifyObservers(context.Background(), CritiqueEvent{EventType: CritiqueFailed})
	waitWithTimeout(t, &wg)

	if healthy.eventCount() != 1 {
		t.Errorf("Expected healthy observer to receive 1 event, got %d", healthy.eventCount())
	}
}

func TestLoggingObserver_HandlesAllEventTypes(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	obs := NewLoggingObserver(logger)

	if obs.GetObserverName() != "logging_observer" {
		t.Errorf("Expected logging_observer, got %s", obs.GetObserverName())
	}

	eventTypes := []EventType{
		CritiqueStarted,
		CritiqueCompleted,
		CritiqueFailed,
		ImageFetched,
		ImageFetchFailed,
		EventType("unknown"),
	}
	for _, eventType := range eventTypes {
		obs.OnEvent(context.Background(), CritiqueEvent{
			EventType:    eventType,
			Source:       "test.jpg",
			Grade:        "B",
			ErrorMessage: "sample",
			Metadata:     map[string]interface{}{"width": 800},
		})
	}
}
