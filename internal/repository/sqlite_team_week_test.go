package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamWeekRepo_StoresPayloadVerbatim(t *testing.T) {
	repo := NewSQLiteTeamWeekRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	junk := []byte(`{"not":"a week"}`)
	rec := testutil.NewTestTeamWeekRecord("night-owls", "aria", testutil.WithTeamPayload(junk))
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.Get(ctx, "night-owls", "aria")
	require.NoError(t, err)
	assert.Equal(t, string(junk), string(got.Payload))
}

func TestTeamWeekRepo_UpsertUpdatesTemplate(t *testing.T) {
	repo := NewSQLiteTeamWeekRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTeamWeekRecord("crew", "aria", testutil.WithTemplateID("classic"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTeamWeekRecord("crew", "aria", testutil.WithTemplateID("stream"))))

	got, err := repo.Get(ctx, "crew", "aria")
	require.NoError(t, err)
	assert.Equal(t, "stream", got.TemplateID)
}

func TestTeamWeekRepo_ListByTeamAndDelete(t *testing.T) {
	repo := NewSQLiteTeamWeekRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, owner := range []string{"cleo", "aria", "bo"} {
		require.NoError(t, repo.Upsert(ctx, testutil.NewTestTeamWeekRecord("crew", owner)))
	}
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestTeamWeekRecord("other", "aria")))

	list, err := repo.ListByTeam(ctx, "crew")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"aria", "bo", "cleo"}, []string{list[0].Owner, list[1].Owner, list[2].Owner})

	require.NoError(t, repo.Delete(ctx, "crew", "bo"))
	_, err = repo.Get(ctx, "crew", "bo")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	other, err := repo.ListByTeam(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
