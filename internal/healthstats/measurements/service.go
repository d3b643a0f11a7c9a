package measurements

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/metrics"
	"github.com/2beens/healthtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// refreshTimeout bounds the sheet check done before serving reads
const refreshTimeout = 5 * time.Second

type Service struct {
	dataset        *Dataset
	metricsManager *metrics.Manager
}

func NewService(dataset *Dataset, metricsManager *metrics.Manager) *Service {
	return &Service{
		dataset:        dataset,
		metricsManager: metricsManager,
	}
}

// All returns every row, reloading the sheet first if it changed on disk.
func (s *Service) All() []Measurement {
	s.refresh()
	return s.dataset.All()
}

func (s *Service) Persons() []string {
	s.refresh()
	return s.dataset.Persons()
}

func (s *Service) Pending() int {
	return s.dataset.Pending()
}

func (s *Service) Defaults(person string) EntryDefaults {
	s.refresh()
	if latest, ok := LatestOf(person, s.dataset.All()); ok {
		return NewEntryDefaults(&latest)
	}
	return NewEntryDefaults(nil)
}

// refresh serves the rows in memory when the sheet cannot be read.
func (s *Service) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if err := s.dataset.Refresh(ctx); err != nil {
		log.Warnf("refresh measurements, serving rows in memory: %s", err)
	}
}

// AppendAndPersist adds the measurement and rewrites the sheet.
// On ErrResourceLocked the row stays in memory and Retry can persist it later.
func (s *Service) AppendAndPersist(ctx context.Context, m Measurement) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "measurementsService.appendAndPersist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("person", m.Person))

	if err := m.Validate(); err != nil {
		return err
	}

	s.dataset.Append(m)
	s.metricsManager.CounterMeasurementsAdded.Inc()

	return s.persist(ctx)
}

// Retry persists rows left pending by an earlier failure.
func (s *Service) Retry(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "measurementsService.retry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if s.dataset.Pending() == 0 {
		return nil
	}
	return s.persist(ctx)
}

func (s *Service) persist(ctx context.Context) error {
	defer func() {
		s.metricsManager.GaugePendingRows.Set(float64(s.dataset.Pending()))
	}()

	err := s.dataset.Persist(ctx)
	if err == nil {
		return nil
	}

	reason := "other"
	if errors.Is(err, ErrResourceLocked) {
		reason = "locked"
	}
	s.metricsManager.CounterPersistFailures.WithLabelValues(reason).Inc()
	log.Errorf("persist measurements [%d pending]: %s", s.dataset.Pending(), err)

	return err
}
