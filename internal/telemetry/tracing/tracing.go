package tracing

import (
	"fmt"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "devfolio"

// GlobalTracer resolves through the global provider, so spans started before
// HoneycombSetup, or with tracing disabled, are no-ops.
var GlobalTracer trace.Tracer = otel.Tracer(ServiceName)

// HoneycombSetup configures the OTel SDK to export to Honeycomb. Exporter
// settings (HONEYCOMB_API_KEY, OTEL_EXPORTER_OTLP_ENDPOINT, ...) come from
// the environment.
func HoneycombSetup(enabled bool, serviceName string) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry: %w", err)
	}

	log.Infof("honeycomb tracing enabled for service [%s]", serviceName)
	return otelShutdown, nil
}
