package spawn

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/carlaops/carpark/internal/spawn"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
