package observability

import (
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	testlogger "github.com/tempochain/tempo/internal/testutils/logger"
)

/*
Observability is a test implementation of the observability interfaces the
components of this module consume - logs go to the test log, metrics are
no-op.
*/
type Observability struct {
	log *slog.Logger
	mp  metric.MeterProvider
}

// Default creates observability for test t: debug level test logger, no-op
// metrics.
func Default(t testing.TB) *Observability {
	return &Observability{
		log: testlogger.New(t),
		mp:  noop.NewMeterProvider(),
	}
}

/*
NOP creates observability where everything is no-op. Use it for tests for
which it absolutely doesn't make sense to create any logs or metrics.
*/
func NOP() *Observability {
	return &Observability{
		log: testlogger.NOP(),
		mp:  noop.NewMeterProvider(),
	}
}

func (o *Observability) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	return o.mp.Meter(name, opts...)
}

func (o *Observability) Logger() *slog.Logger {
	return o.log
}
