package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeEmbedURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "watch link", raw: "https://www.youtube.com/watch?v=abc123", want: "https://www.youtube.com/embed/abc123"},
		{name: "mobile watch link", raw: "https://m.youtube.com/watch?v=abc123&t=10s", want: "https://www.youtube.com/embed/abc123"},
		{name: "short link", raw: "https://youtu.be/xyz789", want: "https://www.youtube.com/embed/xyz789"},
		{name: "watch link without id", raw: "https://www.youtube.com/watch", want: ""},
		{name: "other host", raw: "https://vimeo.com/12345", want: ""},
		{name: "not a url", raw: "bench press video", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YouTubeEmbedURL(tt.raw))
		})
	}
}

func TestEquipmentType(t *testing.T) {
	assert.True(t, EquipmentStrength.Valid())
	assert.True(t, EquipmentCardio.Valid())
	assert.False(t, EquipmentType("yoga").Valid())

	assert.True(t, (&Equipment{}).IsStrength(), "untyped equipment defaults to strength")
	assert.False(t, (&Equipment{Type: EquipmentCardio}).IsStrength())
}
