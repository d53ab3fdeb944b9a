// internal/decisiontree/store_test.go
package decisiontree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Shape(t *testing.T) {
	store, err := NewStore(fixtureRows())
	require.NoError(t, err)

	root := store.Root()
	assert.Equal(t, "root", root.Name())
	assert.False(t, root.Terminal())
	assert.Equal(t, []string{"web", "api"}, root.Labels())
	assert.Equal(t, 9, store.Len())

	leaf, ok := store.Lookup("web/fast/simple")
	require.True(t, ok)
	assert.True(t, leaf.Terminal())
	p, ok := leaf.Payload()
	require.True(t, ok)
	assert.Equal(t, []string{"Next.js"}, p.Frontend.Primary)

	ext, ok := store.Lookup("/web/extended/")
	require.True(t, ok)
	assert.False(t, ext.Terminal())
	assert.Empty(t, ext.Labels())
	_, ok = ext.Payload()
	assert.False(t, ok)
}

func TestNewStore_NamesDefaultToLabels(t *testing.T) {
	store, err := NewStore([]Edge{
		{Label: "desktop", Name: "desktop-app", Description: "Desktop application"},
		{Parent: "desktop", Label: "simple"},
	})
	require.NoError(t, err)

	n, ok := store.Root().Child("desktop")
	require.True(t, ok)
	assert.Equal(t, "desktop-app", n.Name())
	assert.Equal(t, "Desktop application", n.Description())

	c, ok := n.Child("simple")
	require.True(t, ok)
	assert.Equal(t, "simple", c.Name())
}

func TestNewStore_Errors(t *testing.T) {
	tests := []struct {
		name        string
		rows        []Edge
		expectedErr error
	}{
		{
			name:        "parent declared after child",
			rows:        []Edge{{Parent: "web", Label: "fast"}, {Label: "web"}},
			expectedErr: ErrUnknownParent,
		},
		{
			name:        "duplicate label under the same parent",
			rows:        []Edge{{Label: "web"}, {Label: "web"}},
			expectedErr: ErrDuplicateLabel,
		},
		{
			name:        "empty label",
			rows:        []Edge{{Label: "  "}},
			expectedErr: ErrEmptyLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.rows)
			assert.Nil(t, store)
			assert.True(t, errors.Is(err, tt.expectedErr), "got %v", err)
		})
	}
}

func TestNewStore_SameLabelUnderDifferentParents(t *testing.T) {
	_, err := NewStore([]Edge{
		{Label: "web"},
		{Label: "desktop"},
		{Parent: "web", Label: "simple"},
		{Parent: "desktop", Label: "simple"},
	})
	assert.NoError(t, err)
}

func TestStore_Walk(t *testing.T) {
	store, err := NewStore(fixtureRows())
	require.NoError(t, err)

	var lines []string
	store.Walk(func(path, label string, depth int, n *Node) {
		lines = append(lines, strings.Repeat(".", depth)+path)
	})

	assert.Equal(t, []string{
		"",
		".web",
		"..web/fast",
		"...web/fast/simple",
		"..web/extended",
		".api",
		"..api/small",
		"..api/xlarge",
		"...api/xlarge/large",
	}, lines)
}

func TestStore_PayloadCopiedOnBuild(t *testing.T) {
	rows := fixtureRows()
	store, err := NewStore(rows)
	require.NoError(t, err)

	rows[4].Payload.Frontend.Primary[0] = "mutated"

	leaf, _ := store.Lookup("web/fast/simple")
	p, _ := leaf.Payload()
	assert.Equal(t, "Next.js", p.Frontend.Primary[0])
}
