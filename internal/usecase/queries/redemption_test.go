//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/queries"
	"coachdesk/tests/common/builder"
	queriesmock "coachdesk/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func listItems(n int) []*queries.RedemptionListItem {
	items := make([]*queries.RedemptionListItem, 0, n)
	for i := 0; i < n; i++ {
		b := builder.NewRedemptionBuilder()
		b.CreatedAt = builder.BaseTime.Add(-time.Duration(i) * time.Minute)
		items = append(items, b.BuildListItem())
	}
	return items
}

func TestRedemptionQueries_List(t *testing.T) {
	t.Run("first page fetches one extra row to detect more", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRedemptionReadStore(ctrl)
		rows := listItems(3)
		store.EXPECT().ListFirstPage(gomock.Any(), int32(3)).Return(rows, nil)

		items, next, err := queries.NewRedemptionQueries(store).List(context.Background(), nil, 2)

		require.NoError(t, err)
		assert.Equal(t, rows[:2], items)
		require.NotNil(t, next)
		at, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID, id)
		assert.True(t, at.Equal(rows[1].CreatedAt))
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRedemptionReadStore(ctrl)
		store.EXPECT().ListFirstPage(gomock.Any(), int32(queries.DefaultListLimit+1)).Return(listItems(1), nil)

		items, next, err := queries.NewRedemptionQueries(store).List(context.Background(), &queries.Cursor{}, 0)

		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Nil(t, next)
	})

	t.Run("cursor continues after the last row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRedemptionReadStore(ctrl)
		lastID := uuid.New()
		lastAt := builder.BaseTime.Truncate(time.Microsecond)
		store.EXPECT().ListKeyset(gomock.Any(), gomock.Any(), lastID, int32(queries.MaxListLimit+1)).
			DoAndReturn(func(_ context.Context, at time.Time, _ uuid.UUID, _ int32) ([]*queries.RedemptionListItem, error) {
				assert.True(t, at.Equal(lastAt))
				return nil, nil
			})

		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(lastAt, lastID)}
		items, next, err := queries.NewRedemptionQueries(store).List(context.Background(), cursor, 1000)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Nil(t, next)
	})

	t.Run("garbage cursor is a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRedemptionReadStore(ctrl)

		_, _, err := queries.NewRedemptionQueries(store).List(context.Background(), &queries.Cursor{After: "!!"}, 10)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("store failure is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRedemptionReadStore(ctrl)
		store.EXPECT().ListFirstPage(gomock.Any(), gomock.Any()).Return(nil, infra.WrapRepoErr("list", nil))

		_, _, err := queries.NewRedemptionQueries(store).List(context.Background(), nil, 10)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestUserQueries_GetCurrentUser(t *testing.T) {
	t.Run("active user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := queries.NewUserQueries(store).GetCurrentUser(context.Background(), view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("missing user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, infra.WrapRepoErr("user", nil, infra.KindNotFound))

		_, err := queries.NewUserQueries(store).GetCurrentUser(context.Background(), uuid.New())
		assert.ErrorIs(t, err, queries.ErrUserNotFound)
	})

	t.Run("inactive user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().AsInactive().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := queries.NewUserQueries(store).GetCurrentUser(context.Background(), view.ID)
		assert.ErrorIs(t, err, queries.ErrUserInactive)
	})
}
