package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenUniqIDStr(t *testing.T) {
	SetupIDWorker(1)

	a, b := GenUniqIDStr(), GenUniqIDStr()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-03-01T00:00:00Z", NormalizeDate("2024-03-01"))
	assert.Equal(t, "2024-03-01T10:00:00Z", NormalizeDate("2024-03-01T12:00:00+02:00"))
	assert.Equal(t, "yesterday", NormalizeDate("yesterday"))
	assert.Equal(t, "", NormalizeDate(""))
}

func TestGetMimeTypeByExtension(t *testing.T) {
	assert.Equal(t, "application/json", GetMimeTypeByExtension(".json"))
	assert.Equal(t, "text/markdown", GetMimeTypeByExtension(".md"))
	assert.Equal(t, "application/octet-stream", GetMimeTypeByExtension(".nope"))
}
