package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"whitelabel/internal/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanVerifyDomain,
		tracer.String(tracer.AttrDomain, "acme.biz"),
		tracer.Bool(tracer.AttrBreakerOpen, false),
	)

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.String(tracer.AttrState, "pending_dns"))
	span.AddEvent(tracer.EventDomainPersisted, tracer.Int64("count", 1))
	span.End(errors.New("ignored"))
}

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := tracer.NewOTel(tracer.WithOTelTracer(provider.Tracer("test")))

	_, span := tr.Start(context.Background(), tracer.SpanAddDomain,
		tracer.String(tracer.AttrDomain, "acme.biz"),
		tracer.Int64(tracer.AttrAttempts, 2),
		tracer.Duration("elapsed", 1500*time.Millisecond),
	)
	span.AddEvent(tracer.EventDomainPersisted)
	span.End(errors.New("provider down"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, tracer.SpanAddDomain, ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Len(t, ended[0].Events(), 2, "custom event plus recorded error")

	attrs := map[string]any{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "acme.biz", attrs[tracer.AttrDomain])
	assert.Equal(t, int64(2), attrs[tracer.AttrAttempts])
	assert.Equal(t, int64(1500), attrs["elapsed"])
}
