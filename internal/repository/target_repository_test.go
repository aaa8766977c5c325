package repository

import (
	"context"
	"testing"
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	t.Run("create target successfully", func(t *testing.T) {
		tgt := &model.Target{
			Email:      "a@x.com",
			CampaignID: 1,
			Token:      model.NewToken(),
		}

		created, err := repo.Create(ctx, tgt)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, tgt.Email, created.Email)
		assert.Equal(t, tgt.Token, created.Token)
		assert.Nil(t, created.SentAt)
	})

	t.Run("duplicate token rejected", func(t *testing.T) {
		token := model.NewToken()
		_, err := repo.Create(ctx, &model.Target{Email: "b@x.com", CampaignID: 1, Token: token})
		require.NoError(t, err)

		_, err = repo.Create(ctx, &model.Target{Email: "c@x.com", CampaignID: 2, Token: token})
		assert.Error(t, err)
	})
}

func TestTargetRepository_GetByToken(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	token := model.NewToken()
	_, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 1, Token: token})
	require.NoError(t, err)

	t.Run("known token", func(t *testing.T) {
		tgt, err := repo.GetByToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", tgt.Email)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := repo.GetByToken(ctx, "no-such-token")
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})
}

func TestTargetRepository_ExistsInCampaign(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 1, Token: model.NewToken()})
	require.NoError(t, err)

	exists, err := repo.ExistsInCampaign(ctx, 1, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	// same email in another campaign is a different pair
	exists, err = repo.ExistsInCampaign(ctx, 2, "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTargetRepository_MarkOpened_Idempotent(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	token := model.NewToken()
	_, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 1, Token: token})
	require.NoError(t, err)

	first := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	ok, err := repo.MarkOpened(ctx, token, first, "10.0.0.1", "Mozilla/5.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkOpened(ctx, token, second, "10.0.0.2", "curl/8")
	require.NoError(t, err)
	assert.False(t, ok)

	tgt, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, tgt.OpenedAt)
	assert.True(t, tgt.OpenedAt.Equal(first))
	assert.Equal(t, "10.0.0.1", tgt.IPAddress)
}

func TestTargetRepository_MarkOpened_UnknownToken(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	ok, err := repo.MarkOpened(ctx, "missing", time.Now(), "10.0.0.1", "ua")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTargetRepository_MarkClicked_Idempotent(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	token := model.NewToken()
	_, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 1, Token: token})
	require.NoError(t, err)

	first := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	ok, err := repo.MarkClicked(ctx, token, first, "10.0.0.1", "ua")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkClicked(ctx, token, first.Add(time.Minute), "10.0.0.1", "ua")
	require.NoError(t, err)
	assert.False(t, ok)

	tgt, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, tgt.ClickedAt)
	assert.True(t, tgt.ClickedAt.Equal(first))
}

func TestTargetRepository_MarkSubmitted_KeepsFirstPayload(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	token := model.NewToken()
	_, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 1, Token: token})
	require.NoError(t, err)

	ok, err := repo.MarkSubmitted(ctx, token, time.Now(), "email=x@y.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkSubmitted(ctx, token, time.Now(), "email=z@y.com")
	require.NoError(t, err)
	assert.False(t, ok)

	tgt, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "email=x@y.com", tgt.SubmittedData)
}

func TestTargetRepository_MarkSent_OnlyOnce(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	tgt, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 1, Token: model.NewToken()})
	require.NoError(t, err)

	first := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkSent(ctx, tgt.ID, first))
	require.NoError(t, repo.MarkSent(ctx, tgt.ID, first.Add(time.Hour)))

	got, err := repo.GetByToken(ctx, tgt.Token)
	require.NoError(t, err)
	require.NotNil(t, got.SentAt)
	assert.True(t, got.SentAt.Equal(first))
}

func TestTargetRepository_ListByCampaign(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTargetRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &model.Target{Email: "a@x.com", CampaignID: 7, Token: model.NewToken()})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &model.Target{Email: "b@x.com", CampaignID: 8, Token: model.NewToken()})
	require.NoError(t, err)

	targets, err := repo.ListByCampaign(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, targets, 3)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
