package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	full := ContentHash([]byte("hello"), 0)
	assert.Len(t, full, 16)
	assert.Equal(t, full[:8], ContentHash([]byte("hello"), 8))
	assert.NotEqual(t, full, ContentHash([]byte("hello!"), 0))
	assert.Equal(t, full, ContentHash([]byte("hello"), 99))
}

func TestContentHash_Empty(t *testing.T) {
	assert.Equal(t, "ef46db3751d8e999", ContentHash(nil, 0))
}
