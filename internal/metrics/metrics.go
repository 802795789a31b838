package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's OTel instruments. A nil *Metrics or one built by
// NewMock ignores every Record call.
type Metrics struct {
	Database *DatabaseMetrics

	profilesRegistered  metric.Int64Counter
	internshipsPosted   metric.Int64Counter
	matchesViewed       metric.Int64Counter
	quizzesGenerated    metric.Int64Counter
	quizzesRejected     metric.Int64Counter
	quizSubmissions     metric.Int64Counter
	quizScore           metric.Int64Histogram
	applicationsCreated metric.Int64Counter
	eventsPublished     metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.Database, err = NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	m.profilesRegistered, err = meter.Int64Counter(
		"internship_service.profiles.registered",
		metric.WithDescription("Total number of registered profiles"),
		metric.WithUnit("{profile}"),
	)
	if err != nil {
		return nil, err
	}

	m.internshipsPosted, err = meter.Int64Counter(
		"internship_service.internships.posted",
		metric.WithDescription("Total number of internships posted by employers"),
		metric.WithUnit("{internship}"),
	)
	if err != nil {
		return nil, err
	}

	m.matchesViewed, err = meter.Int64Counter(
		"internship_service.matches.viewed",
		metric.WithDescription("Total number of ranked internship lists served"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.quizzesGenerated, err = meter.Int64Counter(
		"internship_service.quizzes.generated",
		metric.WithDescription("Total number of screening quizzes generated"),
		metric.WithUnit("{quiz}"),
	)
	if err != nil {
		return nil, err
	}

	m.quizzesRejected, err = meter.Int64Counter(
		"internship_service.quizzes.rejected",
		metric.WithDescription("Quiz generation requests refused, by reason"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.quizSubmissions, err = meter.Int64Counter(
		"internship_service.quizzes.submitted",
		metric.WithDescription("Total number of scored quiz submissions"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.quizScore, err = meter.Int64Histogram(
		"internship_service.quizzes.score",
		metric.WithDescription("Distribution of quiz scores"),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(0, 25, 50, 63, 75, 88, 100),
	)
	if err != nil {
		return nil, err
	}

	m.applicationsCreated, err = meter.Int64Counter(
		"internship_service.applications.created",
		metric.WithDescription("Total number of application records created"),
		metric.WithUnit("{application}"),
	)
	if err != nil {
		return nil, err
	}

	m.eventsPublished, err = meter.Int64Counter(
		"internship_service.events.published",
		metric.WithDescription("Application events handed to the message broker"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordProfileRegistered(ctx context.Context, role string) {
	if m != nil && m.profilesRegistered != nil {
		m.profilesRegistered.Add(ctx, 1, metric.WithAttributes(attribute.String("role", role)))
	}
}

func (m *Metrics) RecordInternshipPosted(ctx context.Context) {
	if m != nil && m.internshipsPosted != nil {
		m.internshipsPosted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordMatchesViewed(ctx context.Context) {
	if m != nil && m.matchesViewed != nil {
		m.matchesViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordQuizGenerated(ctx context.Context) {
	if m != nil && m.quizzesGenerated != nil {
		m.quizzesGenerated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordQuizRejected(ctx context.Context, reason string) {
	if m != nil && m.quizzesRejected != nil {
		m.quizzesRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func (m *Metrics) RecordQuizSubmitted(ctx context.Context, score int, passed bool) {
	if m == nil {
		return
	}
	if m.quizSubmissions != nil {
		m.quizSubmissions.Add(ctx, 1, metric.WithAttributes(attribute.Bool("passed", passed)))
	}
	if m.quizScore != nil {
		m.quizScore.Record(ctx, int64(score))
	}
}

func (m *Metrics) RecordApplicationCreated(ctx context.Context, passed bool) {
	if m != nil && m.applicationsCreated != nil {
		m.applicationsCreated.Add(ctx, 1, metric.WithAttributes(attribute.Bool("quiz_passed", passed)))
	}
}

func (m *Metrics) RecordEventPublished(ctx context.Context, driver string, err error) {
	if m != nil && m.eventsPublished != nil {
		m.eventsPublished.Add(ctx, 1, metric.WithAttributes(
			attribute.String("driver", driver),
			attribute.Bool("error", err != nil),
		))
	}
}

// NewMock creates a no-op Metrics instance for testing
func NewMock() *Metrics {
	return &Metrics{Database: &DatabaseMetrics{}}
}
