package otel

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/propagators/autoprop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"

	"github.com/fission/greeter/pkg/info"
)

const (
	OtelEndpointEnvVar   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	OtelInsecureEnvVar   = "OTEL_EXPORTER_OTLP_INSECURE"
	OtelTracesSampler    = "OTEL_TRACES_SAMPLER"
	OtelTracesSamplerArg = "OTEL_TRACES_SAMPLER_ARG"
)

func parseSamplerArg(arg string) (float64, error) {
	ratio, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sampler arg: %w", err)
	}
	return ratio, nil
}

// GetSampler builds the sampler described by OTEL_TRACES_SAMPLER and
// OTEL_TRACES_SAMPLER_ARG. Unset means parentbased_always_on.
func GetSampler() (sdktrace.Sampler, error) {
	sampler := os.Getenv(OtelTracesSampler)
	samplerArg := os.Getenv(OtelTracesSamplerArg)

	switch sampler {
	case "always_on":
		return sdktrace.AlwaysSample(), nil
	case "always_off":
		return sdktrace.NeverSample(), nil
	case "traceidratio":
		ratio, err := parseSamplerArg(samplerArg)
		if err != nil {
			return nil, err
		}
		return sdktrace.TraceIDRatioBased(ratio), nil
	case "", "parentbased_always_on":
		return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
	case "parentbased_always_off":
		return sdktrace.ParentBased(sdktrace.NeverSample()), nil
	case "parentbased_traceidratio":
		ratio, err := parseSamplerArg(samplerArg)
		if err != nil {
			return nil, err
		}
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio)), nil
	default:
		return nil, fmt.Errorf("unsupported sampler: %s", sampler)
	}
}

func getTraceExporter(ctx context.Context, logger logr.Logger) (*otlptrace.Exporter, error) {
	if os.Getenv(OtelEndpointEnvVar) == "" {
		logger.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, skipping trace exporter registration")
		return nil, nil
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithDialOption(grpc.WithUserAgent(info.UserAgent())),
	}
	if insecure, _ := strconv.ParseBool(os.Getenv(OtelInsecureEnvVar)); insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return otlptracegrpc.New(ctx, opts...)
}

// InitProvider configures the global tracer provider and propagators. Spans are
// exported over OTLP gRPC only when an endpoint is configured. The returned
// function flushes and stops the provider.
func InitProvider(ctx context.Context, logger logr.Logger, serviceName string) (func(context.Context), error) {
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(info.BuildInfo().Version),
		),
	)
	if err != nil {
		return nil, err
	}

	sampler, err := GetSampler()
	if err != nil {
		return nil, err
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
	}

	exporter, err := getTraceExporter(ctx, logger)
	if err != nil {
		return nil, err
	}
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}

	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tracerProvider)
	// OTEL_PROPAGATORS, tracecontext,baggage by default
	otel.SetTextMapPropagator(autoprop.NewTextMapPropagator())

	return func(ctx context.Context) {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Error(err, "error shutting down trace provider")
		}
	}, nil
}
