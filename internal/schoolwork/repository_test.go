package schoolwork

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pack/internal/model"
	"pack/internal/testutils"
)

func TestRepository(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	var students []int
	for i := 0; i < 2; i++ {
		u := testutils.CreateTestUser(db)
		require.NoError(t, db.Create(&model.Student{UserID: u.ID, YearGroup: 8, KeyStage: model.KeyStageFor(8)}).Error)
		students = append(students, u.ID)
	}
	alice, bob := students[0], students[1]
	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	later := &model.Schoolwork{StudentID: alice, Title: "Essay", Due: due.Add(24 * time.Hour)}
	sooner := &model.Schoolwork{StudentID: alice, Title: "Worksheet", Due: due}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, sooner))

	list, err := repo.ListForStudent(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Worksheet", list[0].Title)

	none, err := repo.ListForStudent(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, none)

	done := time.Now().UTC().Truncate(time.Second)
	assert.ErrorIs(t, repo.SetCompleted(ctx, sooner.ID, bob, &done), ErrNotFound)
	require.NoError(t, repo.SetCompleted(ctx, sooner.ID, alice, &done))

	list, err = repo.ListForStudent(ctx, alice)
	require.NoError(t, err)
	assert.True(t, list[0].Completed())

	require.NoError(t, repo.SetCompleted(ctx, sooner.ID, alice, nil))
	list, _ = repo.ListForStudent(ctx, alice)
	assert.False(t, list[0].Completed())

	assert.ErrorIs(t, repo.Delete(ctx, later.ID, bob), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, later.ID, alice))
	assert.ErrorIs(t, repo.Delete(ctx, later.ID, alice), ErrNotFound)
}
