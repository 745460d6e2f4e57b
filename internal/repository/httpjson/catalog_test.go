package httpjson

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnaFlavia-corretora/pcd/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSource(t *testing.T, url string) *Source {
	t.Helper()

	client := httpclient.New(httpclient.Config{
		Timeout:         2 * time.Second,
		MaxRetries:      0,
		MaxConnsPerHost: 10,
	})
	cb := httpclient.NewCircuitBreakerClient(client, httpclient.CircuitBreakerConfig{
		Name:         "catalog-test",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Second,
		FailureRatio: 0.5,
		MinRequests:  3,
	}, testLogger())

	return NewSource(cb, url)
}

func TestSource_FetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","marca":"Fiat","modelo":"Argo","preco_publico":"R$ 84.990,00","preco_pcd":"R$ 74.350,00"},
			{"id":"2","marca":"Chevrolet","modelo":"Onix","preco_publico":"R$ 90.000,00","preco_pcd":"R$ 82.000,00"}
		]`))
	}))
	defer server.Close()

	items, err := testSource(t, server.URL+"/carros.json").FetchCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Fiat", items[0].Marca)
	assert.Equal(t, "R$ 74.350,00", items[0].PrecoPCD)
	assert.Equal(t, "2", items[1].ID)
}

func TestSource_FetchCatalog_EmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	items, err := testSource(t, server.URL).FetchCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSource_FetchCatalog_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	items, err := testSource(t, server.URL+"/missing.json").FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "404")
}

func TestSource_FetchCatalog_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer server.Close()

	items, err := testSource(t, server.URL).FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Nil(t, items)
}

func TestSource_FetchCatalog_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testSource(t, server.URL).FetchCatalog(context.Background())
	require.Error(t, err)
}

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	return exporter
}

func TestSource_FetchCatalog_EmitsSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","marca":"Fiat","modelo":"Argo"}]`))
	}))
	defer server.Close()

	_, err := testSource(t, server.URL).FetchCatalog(context.Background())
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "catalog.fetch", span.Name)
	assert.Equal(t, trace.SpanKindClient, span.SpanKind)
	assert.Equal(t, codes.Unset, span.Status.Code)

	attrs := make(map[string]string)
	for _, a := range span.Attributes {
		attrs[string(a.Key)] = a.Value.Emit()
	}
	assert.Equal(t, server.URL, attrs["http.url"])
	assert.Equal(t, "1", attrs["catalog.items"])
}

func TestSource_FetchCatalog_SpanRecordsError(t *testing.T) {
	exporter := setupTestTracer(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testSource(t, server.URL).FetchCatalog(context.Background())
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.NotEmpty(t, spans[0].Events)
}
