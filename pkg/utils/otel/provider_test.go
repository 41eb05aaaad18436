package otel

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestGetSampler(t *testing.T) {
	tests := []struct {
		sampler     string
		samplerArg  string
		wantSampler sdktrace.Sampler
		wantError   string
	}{
		{"", "", sdktrace.ParentBased(sdktrace.AlwaysSample()), ""},
		{"always_on", "", sdktrace.AlwaysSample(), ""},
		{"always_off", "", sdktrace.NeverSample(), ""},
		{"parentbased_always_on", "", sdktrace.ParentBased(sdktrace.AlwaysSample()), ""},
		{"parentbased_always_off", "", sdktrace.ParentBased(sdktrace.NeverSample()), ""},
		{"traceidratio", "0.5", sdktrace.TraceIDRatioBased(0.5), ""},
		{"traceidratio", "", nil, "invalid sampler arg: strconv.ParseFloat: parsing \"\": invalid syntax"},
		{"parentbased_traceidratio", "", nil, "invalid sampler arg: strconv.ParseFloat: parsing \"\": invalid syntax"},
		{"parentbased_traceidratio", "0.01", sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.01)), ""},
		{"sometimes", "", nil, "unsupported sampler: sometimes"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.sampler, tt.samplerArg), func(t *testing.T) {
			t.Setenv(OtelTracesSampler, tt.sampler)
			t.Setenv(OtelTracesSamplerArg, tt.samplerArg)
			gotSampler, gotError := GetSampler()
			if tt.wantError != "" {
				require.EqualError(t, gotError, tt.wantError)
				return
			}
			require.NoError(t, gotError)
			if !reflect.DeepEqual(gotSampler, tt.wantSampler) {
				t.Errorf("GetSampler() gotSampler = %#v, want %#v", gotSampler, tt.wantSampler)
			}
		})
	}
}

func TestGetTraceExporterWithoutEndpoint(t *testing.T) {
	t.Setenv(OtelEndpointEnvVar, "")
	exporter, err := getTraceExporter(context.Background(), logr.Discard())
	require.NoError(t, err)
	assert.Nil(t, exporter)
}

func TestInitProviderPropagators(t *testing.T) {
	t.Setenv(OtelEndpointEnvVar, "")
	t.Setenv(OtelTracesSampler, "")
	t.Setenv("OTEL_PROPAGATORS", "tracecontext,baggage")

	shutdown, err := InitProvider(context.Background(), logr.Discard(), "greeter-test")
	require.NoError(t, err)
	defer shutdown(context.Background())

	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "baggage")
}

func TestInitProviderRejectsBadSampler(t *testing.T) {
	t.Setenv(OtelTracesSampler, "traceidratio")
	t.Setenv(OtelTracesSamplerArg, "half")

	_, err := InitProvider(context.Background(), logr.Discard(), "greeter-test")
	require.Error(t, err)
}
