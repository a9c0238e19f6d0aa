package gemini

import (
	"testing"
	"time"

	"EditorBot/internal/provider"
	"EditorBot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func testAdapter() *Adapter {
	// Клиент не нужен: BuildRequest и ParseResponse в сеть не ходят
	return &Adapter{model: defaultModel, timeout: time.Second}
}

func TestCapabilities(t *testing.T) {
	caps := testAdapter().Capabilities()
	assert.True(t, caps.SupportsInlineImages)
}

func TestBuildRequestInlinesImages(t *testing.T) {
	a := testAdapter()
	images := []session.Asset{
		{ID: 0, Data: []byte("jpeg-bytes"), MimeType: "image/jpeg"},
		{ID: 1, Data: []byte("png-bytes"), MimeType: "image/png"},
	}

	r, err := a.BuildRequest("Всем привет", images)
	require.NoError(t, err)
	req, ok := r.(request)
	require.True(t, ok)

	require.Len(t, req.contents, 1)
	content := req.contents[0]
	assert.Equal(t, "user", content.Role)
	// Текст промпта, затем картинки в порядке поступления
	require.Len(t, content.Parts, 3)
	assert.Contains(t, content.Parts[0].Text, "Всем привет")
	assert.Contains(t, content.Parts[0].Text, "приложенных изображениях")
	assert.Equal(t, "image/jpeg", content.Parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("jpeg-bytes"), content.Parts[1].InlineData.Data)
	assert.Equal(t, "image/png", content.Parts[2].InlineData.MIMEType)
}

func TestParseResponse(t *testing.T) {
	a := testAdapter()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "Привет, друзья!"}}}},
		},
	}
	text, err := a.ParseResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Привет, друзья!", text)
}

func TestParseResponseNoCandidates(t *testing.T) {
	a := testAdapter()

	_, err := a.ParseResponse(&genai.GenerateContentResponse{})
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.KindMalformedReply, perr.Kind)
}
