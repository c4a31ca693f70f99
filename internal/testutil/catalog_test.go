package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/repository"
)

type thing struct {
	ID   string
	Name string
}

func newThings() *FakeCatalog[thing] {
	return NewFakeCatalog(func(t *thing) string { return t.ID }, func(t *thing) string { return t.Name })
}

func TestFakeCatalog(t *testing.T) {
	ctx := context.Background()
	f := newThings()
	for _, n := range []string{"Alpha", "Beta", "Gamma"} {
		require.NoError(t, f.Create(ctx, &thing{ID: n, Name: n}))
	}

	got, err := f.GetByName(ctx, "beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.ID)

	items, total, err := f.List(ctx, repository.ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Gamma", items[0].Name)

	require.NoError(t, f.Delete(ctx, "Alpha"))
	assert.ErrorIs(t, f.Delete(ctx, "Alpha"), repository.ErrNotFound)
	assert.Equal(t, 2, f.Len())
}
