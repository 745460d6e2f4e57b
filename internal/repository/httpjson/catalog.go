package httpjson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnaFlavia-corretora/pcd/internal/domain"
	"github.com/AnaFlavia-corretora/pcd/pkg/httpclient"
)

const tracerName = "github.com/AnaFlavia-corretora/pcd/internal/repository/httpjson"

// Source fetches the catalog snapshot from a remote JSON file over HTTP.
// The request goes through the circuit-breaker client, which handles retry
// and backoff for the single logical fetch.
type Source struct {
	client *httpclient.CircuitBreakerClient
	url    string
}

// NewSource creates an HTTP snapshot source for the given snapshot URL.
func NewSource(client *httpclient.CircuitBreakerClient, url string) *Source {
	return &Source{
		client: client,
		url:    url,
	}
}

// FetchCatalog performs the GET and decodes the snapshot array. A non-OK
// status or a malformed body fails the whole fetch; no partial catalog is
// ever returned.
func (s *Source) FetchCatalog(ctx context.Context) (items []domain.Vehicle, err error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "catalog.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", s.url)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("catalog.items", len(items)))
		}
		span.End()
	}()

	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog snapshot: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// ParseResponseError consumes and closes the body.
		return nil, fmt.Errorf("fetch catalog snapshot: %w", httpclient.ParseResponseError(resp, "catalogo"))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}

	return items, nil
}
