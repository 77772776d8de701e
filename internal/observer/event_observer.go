package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CritiqueEvent represents a critique lifecycle event
type CritiqueEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Source         string                 `json:"source"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	Grade          string                 `json:"grade,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of critique event
type EventType string

const (
	// CritiqueStarted when a critique begins
	CritiqueStarted EventType = "critique_started"
	// CritiqueCompleted when a critique finishes successfully
	CritiqueCompleted EventType = "critique_completed"
	// CritiqueFailed when a critique fails
	CritiqueFailed EventType = "critique_failed"
	// ImageFetched when an image is successfully fetched
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when an image fetch fails
	ImageFetchFailed EventType = "image_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event CritiqueEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event CritiqueEvent)
}

// LoggingObserver logs critique events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles critique events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event CritiqueEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"source":          event.Source,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.Grade != "" {
		fields["grade"] = event.Grade
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	if event.Metadata != nil {
		for k, v := range event.Metadata {
			fields[k] = v
		}
	}

	switch event.EventType {
	case CritiqueStarted:
		o.logger.WithFields(fields).Info("Image critique started")
	case CritiqueCompleted:
		o.logger.WithFields(fields).Info("Image critique completed")
	case CritiqueFailed:
		o.logger.WithFields(fields).Error("Image critique failed")
	case ImageFetched:
		o.logger.WithFields(fields).Debug("Image fetched successfully")
	case ImageFetchFailed:
		o.logger.WithFields(fields).Error("Image fetch failed")
	default:
		o.logger.WithFields(fields).Info("Critique event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// StatsSnapshot is a point-in-time view of the collected critique metrics.
type StatsSnapshot struct {
	TotalCritiques       int64            `json:"total_critiques"`
	SuccessfulCritiques  int64            `json:"successful_critiques"`
	FailedCritiques      int64            `json:"failed_critiques"`
	TotalProcessingSec   float64          `json:"total_processing_sec"`
	AverageProcessingSec float64          `json:"average_processing_sec"`
	GradeCounts          map[string]int64 `json:"grade_counts"`
}

// MetricsObserver collects metrics from critique events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalCritiques      int64
	successfulCritiques int64
	failedCritiques     int64
	totalProcessingTime time.Duration
	gradeCounts         map[string]int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		gradeCounts: make(map[string]int64),
	}
}

// OnEvent handles critique events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event CritiqueEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case CritiqueStarted:
		o.totalCritiques++
	case CritiqueCompleted:
		o.successfulCritiques++
		o.totalProcessingTime += event.ProcessingTime
		if event.Grade != "" {
			o.gradeCounts[event.Grade]++
		}
	case CritiqueFailed:
		o.failedCritiques++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Snapshot returns the current metrics
func (o *MetricsObserver) Snapshot() StatsSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulCritiques > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulCritiques)
	}

	grades := make(map[string]int64, len(o.gradeCounts))
	for grade, count := range o.gradeCounts {
		grades[grade] = count
	}

	return StatsSnapshot{
		TotalCritiques:       o.totalCritiques,
		SuccessfulCritiques:  o.successfulCritiques,
		FailedCritiques:      o.failedCritiques,
		TotalProcessingSec:   o.totalProcessingTime.Seconds(),
		AverageProcessingSec: avgProcessingTime.Seconds(),
		GradeCounts:          grades,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event CritiqueEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
