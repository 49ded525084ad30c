package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slog"
)

// Attr is a telemetry attribute.
type Attr struct {
	kv attribute.KeyValue
}

// String returns a string attribute.
func String[T ~string](k string, v T) Attr {
	return Attr{attribute.String(k, string(v))}
}

// Stringer returns a string attribute. The value is the result of
// calling v.String().
func Stringer(k string, v fmt.Stringer) Attr {
	return String(k, v.String())
}

// Bool returns a boolean attribute.
func Bool[T ~bool](k string, v T) Attr {
	return Attr{attribute.Bool(k, bool(v))}
}

// Int returns an integer attribute.
func Int[T constraints.Integer](k string, v T) Attr {
	return Attr{attribute.Int64(k, int64(v))}
}

func asKeyValues(attrs []Attr) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}

	kvs := make([]attribute.KeyValue, len(attrs))
	for i, a := range attrs {
		kvs[i] = a.kv
	}

	return kvs
}

func asLogArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(
			args,
			slog.Any(string(a.kv.Key), a.kv.Value.AsInterface()),
		)
	}

	return args
}
