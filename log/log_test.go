package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
)

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(&bytes.Buffer{})
	assert.True(t, h.Enabled(context.TODO(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.TODO(), slog.LevelDebug))
}

func TestNewHandler_Options(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf,
		WithLevel(slog.LevelDebug),
		WithSource(true),
		WithFormat(FormatJSON),
	)
	assert.True(t, h.Enabled(context.TODO(), slog.LevelDebug))

	slog.New(h).Debug("hello", "name", "Foo")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "Foo", record["name"])
	assert.Contains(t, record, slog.SourceKey)
}

func TestNewHandler_ExpandsBridgeErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, WithFormat(FormatJSON)))

	err := fmt.Errorf("mirror: %w", &bridgeerrors.EvaluationError{
		Phase: bridgeerrors.PhaseRun,
		Err:   errors.New("boom"),
	})
	logger.Error("failed", "error", err, "plain", errors.New("plain error"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	group, ok := record["error"].(map[string]any)
	require.True(t, ok, "expected error group, got %v", record["error"])
	assert.Equal(t, "evaluation", group["kind"])
	assert.Equal(t, bridgeerrors.PhaseRun, group["phase"])
	assert.Contains(t, group["message"], "boom")

	assert.Equal(t, "plain error", record["plain"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

type fakeValue struct {
	s     string
	panic bool
}

func (f fakeValue) Export() any { return f.s }

func (f fakeValue) String() string {
	if f.panic {
		panic("toString threw")
	}
	return f.s
}

func TestValueAttr(t *testing.T) {
	tests := []struct {
		name  string
		value fakeValue
		want  string
	}{
		{name: "plain", value: fakeValue{s: "[object Object]"}, want: "[object Object]"},
		{name: "truncated", value: fakeValue{s: strings.Repeat("x", 200)}, want: strings.Repeat("x", maxValueLen) + "..."},
		{name: "throwing toString", value: fakeValue{panic: true}, want: "<unprintable log.fakeValue>"},
		{
			name:  "multibyte rune at the cut",
			value: fakeValue{s: strings.Repeat("a", maxValueLen-1) + "é" + "tail"},
			want:  strings.Repeat("a", maxValueLen-1) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := ValueAttr("value", tt.value)
			assert.Equal(t, "value", attr.Key)
			got := attr.Value.Resolve().String()
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}

	assert.Equal(t, "<nil>", ValueAttr("value", nil).Value.Resolve().String())
}
