package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/pkg/errors"
)

func TestGraphNetwork(t *testing.T) {
	data, err := NewGraphLogic(context.Background(), newTestCore(t)).Network()
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 3)
	require.Len(t, data.Links, 1)
	assert.Equal(t, "Go Tour", data.Links[0].Source)
	assert.Equal(t, "cobra", data.Links[0].Target)
}

func TestGraphSelected(t *testing.T) {
	l := NewGraphLogic(context.Background(), newTestCore(t))

	data, err := l.Selected("Go Tour")
	require.NoError(t, err)
	require.Len(t, data.Nodes, 2)
	assert.Equal(t, "Go Tour", data.Nodes[0].ID)
	assert.Equal(t, "cobra", data.Nodes[1].ID)
	assert.Len(t, data.Links, 1)

	_, err = l.Selected("missing")
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ce.GetCode())
}
