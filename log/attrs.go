package log

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
)

// maxValueLen bounds the rendered length of a script value.
const maxValueLen = 120

// ValueAttr returns an attribute that renders a script handle lazily, only
// when the record is actually emitted.
func ValueAttr(key string, v ports.Value) slog.Attr {
	return slog.Any(key, scriptValue{value: v})
}

type scriptValue struct {
	value ports.Value
}

// LogValue renders the handle with the engine's own string conversion.
// A conversion that throws is reported as unprintable instead.
func (v scriptValue) LogValue() (out slog.Value) {
	if v.value == nil {
		return slog.StringValue("<nil>")
	}
	defer func() {
		if r := recover(); r != nil {
			out = slog.StringValue(fmt.Sprintf("<unprintable %T>", v.value))
		}
	}()

	return slog.StringValue(truncate(v.value.String()))
}

// truncate cuts s to at most maxValueLen bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxValueLen {
		return s
	}
	cut := maxValueLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// replaceAttr expands bridge errors into a group.
func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	err, ok := attr.Value.Any().(error)
	if !ok {
		return attr
	}
	var detailed bridgeerrors.DetailedError
	if !errors.As(err, &detailed) {
		return attr
	}
	detail := detailed.ToErrorDetail()
	if detail == nil {
		return attr
	}

	attrs := []any{
		slog.String("message", err.Error()),
		slog.String("kind", string(detail.Kind)),
	}
	if detail.Phase != "" {
		attrs = append(attrs, slog.String("phase", detail.Phase))
	}
	if detail.Subject != "" {
		attrs = append(attrs, slog.String("subject", detail.Subject))
	}
	return slog.Group(attr.Key, attrs...)
}
