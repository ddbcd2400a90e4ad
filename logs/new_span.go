package logs

import (
	"context"
	"crypto/rand"
)

type NewSpan func(ctx context.Context) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context) (context.Context, Span) {

		var parent Span
		if v := ctx.Value(SpanKey); v != nil {
			parent = v.(Span)
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.InfoContext(ctx, "new span", args...)

		return ctx, span
	}
}
