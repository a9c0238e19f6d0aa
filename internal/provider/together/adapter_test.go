package together

import (
	"testing"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdapter() *Adapter {
	return New("test-key", "", time.Second)
}

func TestCapabilities(t *testing.T) {
	caps := testAdapter().Capabilities()
	assert.False(t, caps.SupportsInlineImages)
}

func TestBuildRequestDeterministic(t *testing.T) {
	a := testAdapter()
	images := []session.Asset{
		{ID: 0, Data: []byte("a"), MimeType: "image/jpeg"},
		{ID: 1, Data: []byte("b"), MimeType: "image/png"},
	}

	r1, err := a.BuildRequest("Всем привет", images)
	require.NoError(t, err)
	r2, err := a.BuildRequest("Всем привет", images)
	require.NoError(t, err)
	require.Equal(t, r1, r2)

	req, ok := r1.(request)
	require.True(t, ok)
	assert.Equal(t, defaultModel, string(req.params.Model))
	// Один user-месседж: картинки уходят только строками-заглушками
	assert.Len(t, req.params.Messages, 1)
}

func TestParseResponse(t *testing.T) {
	a := testAdapter()

	resp := &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "Привет, друзья!"}},
		},
	}
	text, err := a.ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Привет, друзья!", text)
}

func TestParseResponseEmptyChoices(t *testing.T) {
	a := testAdapter()

	_, err := a.ParseResponse(&openai.ChatCompletion{})
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindMalformedReply, perr.Kind)
}

func TestParseResponseBlankContent(t *testing.T) {
	a := testAdapter()

	resp := &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "  \n"}},
		},
	}
	_, err := a.ParseResponse(resp)
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindMalformedReply, perr.Kind)
}

func TestParseResponseWrongType(t *testing.T) {
	a := testAdapter()

	_, err := a.ParseResponse("не тот тип")
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindMalformedReply, perr.Kind)
}
