package factory_test

import (
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/llm/factory"
	"github.com/NereaCassian/C-3PO/internal/adapters/llm/httpclient"
	"github.com/NereaCassian/C-3PO/internal/adapters/llm/openai"
	"github.com/NereaCassian/C-3PO/internal/adapters/llm/registry"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Drivers(t *testing.T) {
	t.Parallel()

	r := factory.Default(0)
	assert.Equal(t, []string{factory.DriverOpenAI, factory.DriverResty}, r.Names())

	cfg := domain.ProviderConfig{Endpoint: "http://x/v1/chat/completions", Model: "m", APIKey: "k"}

	c, err := factory.Builder(r, factory.DriverResty)(cfg)
	require.NoError(t, err)
	assert.IsType(t, &httpclient.Client{}, c)

	c, err = factory.Builder(r, factory.DriverOpenAI)(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openai.Client{}, c)

	_, err = factory.Builder(r, "gopher")(cfg)
	assert.ErrorIs(t, err, registry.ErrUnknownDriver)
}
