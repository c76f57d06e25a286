package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/diasm3/customer-cs/internal/types"
)

func TestInitExportsToOTLPHTTP(t *testing.T) {
	var traceRequests atomic.Int32
	var metricRequests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/traces":
			traceRequests.Add(1)
		case "/v1/metrics":
			metricRequests.Add(1)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)

	cfg := &types.Config{
		OTelEnabled:              true,
		OTelServiceName:          "customer-cs-test",
		OTelExporterOTLPEndpoint: server.URL,
		OTelExporterOTLPProtocol: "http/protobuf",
		OTelResourceAttributes:   "service.namespace=customer-cs-test,environment=test",
		OTelTracesSampler:        "always_on",
		OTelTracesSamplerArg:     1.0,
	}

	shutdown, err := Init(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	_, span := otel.Tracer("customer-cs/test").Start(ctx, "integration-span")
	span.End()

	meter := otel.Meter("customer-cs/test")
	counter, err := meter.Int64Counter("customer_cs.test.counter", metric.WithDescription("test counter"))
	require.NoError(t, err)
	counter.Add(ctx, 1)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, shutdown(shutdownCtx))

	require.GreaterOrEqual(t, traceRequests.Load(), int32(1), "no trace export received")
	require.GreaterOrEqual(t, metricRequests.Load(), int32(1), "no metric export received")
}

func TestInitDisabledInstallsNoopProviders(t *testing.T) {
	cfg := &types.Config{OTelEnabled: false}

	shutdown, err := Init(cfg)
	require.NoError(t, err)

	// Instrumented code paths must work without an exporter configured.
	_, span := otel.Tracer("customer-cs/test").Start(context.Background(), "noop-span")
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

func TestValidateRequiresEndpointWhenEnabled(t *testing.T) {
	cfg := &Config{Enabled: true}
	require.Error(t, cfg.Validate())
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{Enabled: false}
	require.NoError(t, cfg.Validate())
	require.Equal(t, defaultServiceName, cfg.ServiceName)
	require.Equal(t, defaultExporterProtocol, cfg.ExporterProtocol)
	require.Equal(t, "always_on", cfg.TracesSampler)
	require.Equal(t, cfg.ServiceName, cfg.ResourceAttributes[resourceServiceNameKey])
}

func TestValidateTraceIDRatioBounds(t *testing.T) {
	cfg := &Config{
		Enabled:          true,
		ExporterEndpoint: "https://collector:4318",
		ExporterProtocol: "http/protobuf",
		TracesSampler:    "traceidratio",
		TracesSamplerArg: 1.5,
	}
	require.Error(t, cfg.Validate())
}

func TestNormalizeOTLPHTTPPath(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		endpoint string
		suffix   string
		want     string
		wantErr  bool
	}{
		{
			name:     "no path appends suffix",
			endpoint: "https://collector:4318",
			suffix:   "/v1/metrics",
			want:     "https://collector:4318/v1/metrics",
		},
		{
			name:     "otlp prefix gets traces suffix",
			endpoint: "https://example.com/otlp",
			suffix:   "/v1/traces",
			want:     "https://example.com/otlp/v1/traces",
		},
		{
			name:     "suffix already present",
			endpoint: "https://example.com/otlp/v1/metrics",
			suffix:   "/v1/metrics",
			want:     "https://example.com/otlp/v1/metrics",
		},
		{
			name:     "query string preserved",
			endpoint: "https://example.com/otlp?token=abc",
			suffix:   "/v1/traces",
			want:     "https://example.com/otlp/v1/traces?token=abc",
		},
		{
			name:     "empty endpoint error",
			endpoint: "",
			suffix:   "/v1/metrics",
			wantErr:  true,
		},
	}

	for _, tt := range testcases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeOTLPHTTPPath(tt.endpoint, tt.suffix)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseGRPCEndpoint(t *testing.T) {
	host, insecure, err := parseGRPCEndpoint("collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", host)
	require.True(t, insecure)

	host, insecure, err = parseGRPCEndpoint("https://collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", host)
	require.False(t, insecure)

	_, _, err = parseGRPCEndpoint("ftp://collector:4317")
	require.Error(t, err)
}
