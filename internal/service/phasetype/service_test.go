package phasetype

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/cache"
	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/logger"
	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/service/types"
	"github.com/ashwinyue/thesis-hub/internal/testutil"
)

type fakeRepo struct {
	*testutil.FakeCatalog[model.PhaseType]
}

func (f fakeRepo) CountPhases(ctx context.Context, id string) (int64, error) {
	return f.Children(ctx, id)
}

func newTestService(t *testing.T) (*Service, fakeRepo) {
	t.Helper()
	repo := fakeRepo{testutil.NewFakeCatalog(
		func(p *model.PhaseType) string { return p.ID },
		func(p *model.PhaseType) string { return p.Name },
	)}
	store := cache.NewStore(cache.NewMemory(), time.Minute, logger.Discard(), nil)
	return NewService(repo, store), repo
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i, name := range []string{"Đăng ký đề tài", "Báo cáo giữa kỳ", "Bảo vệ"} {
		_, err := svc.Create(ctx, &CreateRequest{Name: name, SortOrder: i})
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, &CreateRequest{Name: "BẢO VỆ"})
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = svc.Create(ctx, &CreateRequest{Name: "x", SortOrder: -1})
	assert.Equal(t, 400, errs.CodeOf(err))

	page, err := svc.List(ctx, types.PageRequest{Keyword: "bảo"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Bảo vệ", page.Items[0].Name)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	pt, err := svc.Create(ctx, &CreateRequest{Name: "Bảo vệ"})
	require.NoError(t, err)

	order := 5
	desc := "Hội đồng chấm"
	got, err := svc.Update(ctx, pt.ID, &UpdateRequest{SortOrder: &order, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 5, got.SortOrder)
	assert.Equal(t, "Hội đồng chấm", got.Description)
	assert.Equal(t, "Bảo vệ", got.Name)

	blank := "  "
	_, err = svc.Update(ctx, pt.ID, &UpdateRequest{Name: &blank})
	assert.Equal(t, 400, errs.CodeOf(err))
}

func TestDelete_InUse(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	pt, err := svc.Create(ctx, &CreateRequest{Name: "Bảo vệ"})
	require.NoError(t, err)

	repo.SetChildren(pt.ID, 1)
	assert.ErrorIs(t, svc.Delete(ctx, pt.ID), ErrPhaseTypeInUse)

	repo.SetChildren(pt.ID, 0)
	require.NoError(t, svc.Delete(ctx, pt.ID))
	assert.ErrorIs(t, svc.Delete(ctx, pt.ID), ErrPhaseTypeNotFound)
}
