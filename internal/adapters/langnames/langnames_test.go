package langnames_test

import (
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/langnames"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Spanish", langnames.Name("es"))
	assert.Equal(t, "English", langnames.Name("en"))
	assert.Equal(t, "German", langnames.Name("de"))
	assert.Equal(t, langnames.AutoName, langnames.Name("auto"))
	assert.Equal(t, "not a tag!", langnames.Name("not a tag!"))
}

func TestPromptName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "the detected language", langnames.PromptName("auto"))
	assert.Equal(t, "the detected language", langnames.PromptName(""))
	assert.Equal(t, "French", langnames.PromptName("fr"))
}

func TestValid(t *testing.T) {
	t.Parallel()

	assert.True(t, langnames.Valid("auto"))
	assert.True(t, langnames.Valid("pt-BR"))
	assert.False(t, langnames.Valid("??"))
}
