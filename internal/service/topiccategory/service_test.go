package topiccategory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/service/types"
	"github.com/ashwinyue/thesis-hub/internal/testutil"
)

type fakeRepo struct {
	*testutil.FakeCatalog[model.TopicCategory]
}

func (f fakeRepo) CountTopics(ctx context.Context, id string) (int64, error) {
	return f.Children(ctx, id)
}

func newTestService(t *testing.T) (*Service, fakeRepo) {
	t.Helper()
	repo := fakeRepo{testutil.NewFakeCatalog(
		func(c *model.TopicCategory) string { return c.ID },
		func(c *model.TopicCategory) string { return c.Name },
	)}
	// 不带缓存
	return NewService(repo, nil), repo
}

func TestCRUD(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	ai, err := svc.Create(ctx, &CreateRequest{Name: "Trí tuệ nhân tạo"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateRequest{Name: "Mạng máy tính"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateRequest{Name: "trí tuệ nhân tạo"})
	assert.ErrorIs(t, err, ErrNameTaken)

	page, err := svc.List(ctx, types.PageRequest{PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 1)

	name := "AI"
	got, err := svc.Update(ctx, ai.ID, &UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "AI", got.Name)

	repo.SetChildren(ai.ID, 3)
	err = svc.Delete(ctx, ai.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	assert.Equal(t, 409, errs.CodeOf(err))

	repo.SetChildren(ai.ID, 0)
	require.NoError(t, svc.Delete(ctx, ai.ID))

	_, err = svc.Get(ctx, ai.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRepositoryErrorsAreInternal(t *testing.T) {
	svc, repo := newTestService(t)
	repo.Err = errors.New("db down")

	_, err := svc.Get(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 500, errs.CodeOf(err))
	assert.Equal(t, "internal server error", errs.MessageOf(err))
}
