package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMirrorReport(t *testing.T) {
	r := NewMirrorReport()
	assert.NotNil(t, r.Filtered)
	assert.Empty(t, r.Mirrored)
	assert.True(t, r.IsComplete())

	r.Skipped = append(r.Skipped, SkippedBinding{Name: "broken", Reason: "getter threw"})
	assert.False(t, r.IsComplete())
}

func TestIsKnownTypeTag(t *testing.T) {
	for _, tag := range KnownTypeTags {
		assert.True(t, IsKnownTypeTag(tag), tag)
	}
	assert.False(t, IsKnownTypeTag("null"))
	assert.False(t, IsKnownTypeTag("Object"))
}

func TestErrorDetail_Error(t *testing.T) {
	tests := []struct {
		name   string
		detail *ErrorDetail
		want   string
	}{
		{name: "nil", detail: nil, want: ""},
		{name: "internal kind hidden", detail: NewErrorDetail(KindInternal, "boom"), want: "boom"},
		{name: "kind prefix", detail: NewErrorDetail(KindMarshal, "bad value"), want: "marshal: bad value"},
		{name: "subject not in message", detail: NewErrorDetail(KindLookup, "unknown export: x").About("x"), want: "lookup: unknown export: x"},
		{
			name:   "cause",
			detail: &ErrorDetail{Kind: KindSkip, Message: "global Foo", Cause: NewErrorDetail(KindEvaluation, "boom")},
			want:   "skip: global Foo: evaluation: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.Error())
		})
	}
}
