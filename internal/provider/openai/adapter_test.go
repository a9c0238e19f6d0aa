package openai

import (
	"testing"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities(t *testing.T) {
	a := New("", time.Second)
	assert.True(t, a.Capabilities().SupportsInlineImages)
}

func TestBuildRequestDeterministic(t *testing.T) {
	a := New("gpt-4o", time.Second)
	images := []session.Asset{
		{ID: 0, Data: []byte("jpeg-bytes"), MimeType: "image/jpeg"},
	}

	r1, err := a.BuildRequest("Всем привет", images)
	require.NoError(t, err)
	r2, err := a.BuildRequest("Всем привет", images)
	require.NoError(t, err)
	require.Equal(t, r1, r2)

	req, ok := r1.(request)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", string(req.params.Model))
}

func TestParseResponseWrongType(t *testing.T) {
	a := New("", time.Second)

	_, err := a.ParseResponse(42)
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindMalformedReply, perr.Kind)
}

func TestMakeImageDataURL(t *testing.T) {
	url := makeImageDataURL(session.Asset{Data: []byte{0x01, 0x02}, MimeType: "image/png"})
	assert.Equal(t, "data:image/png;base64,AQI=", url)

	// Пустой MIME-тип трактуем как JPEG
	url = makeImageDataURL(session.Asset{Data: []byte{0x01}})
	assert.Contains(t, url, "data:image/jpeg;base64,")
}
