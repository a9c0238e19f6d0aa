package provider_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"EditorBot/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportWrapsCause(t *testing.T) {
	err := provider.Transport(context.DeadlineExceeded)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, provider.KindTransport, err.Kind)
	assert.Contains(t, err.Error(), "сетевая ошибка")
}

func TestRejectedKeepsStatus(t *testing.T) {
	cause := errors.New("invalid api key")
	err := provider.Rejected(401, "invalid api key", cause)

	assert.Equal(t, provider.KindRejected, err.Kind)
	assert.Equal(t, 401, err.Status)
	assert.Contains(t, err.Error(), "401")
	require.ErrorIs(t, err, cause)
}

func TestMalformedDistinguishableByKind(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", provider.Malformed("в ответе нет текста"))

	var perr *provider.Error
	require.ErrorAs(t, wrapped, &perr)
	assert.Equal(t, provider.KindMalformedReply, perr.Kind)
}
