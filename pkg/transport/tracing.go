package transport

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/magnani/membros-go/pkg/apierr"
)

func (c *Client) startSpan(ctx context.Context, method, path, requestID string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "membros "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("url.path", path),
			attribute.String("membros.request_id", requestID),
		),
	)
}

func endSpan(span trace.Span, resp *Response, err *apierr.Error, retries int) {
	span.SetAttributes(attribute.Int("membros.retries", retries))
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.SetAttributes(attribute.String("membros.error_code", err.Code))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Code)
	}
}
