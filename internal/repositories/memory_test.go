package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"coursetrack-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_UserEmailIsUnique(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.User{ID: "u1", Email: "alice@example.com", PasswordHash: "h"}))
	err := store.Create(ctx, &models.User{ID: "u2", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	user, err := store.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	byEmail, err := store.GetByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "h", byEmail.PasswordHash)
}

func TestMemoryStore_UpsertKeepsOneRecordPerKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	first, err := store.Upsert(ctx, &models.ProgressRecord{ID: "p1", UserID: "u", CourseID: "c", VideoID: "v", WatchedDuration: 10})
	require.NoError(t, err)
	second, err := store.Upsert(ctx, &models.ProgressRecord{ID: "p2", UserID: "u", CourseID: "c", VideoID: "v", WatchedDuration: 40, Completed: true})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	records, err := store.ListByUserCourse(ctx, "u", "c")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 40, records[0].WatchedDuration)
	assert.True(t, records[0].Completed)
}

func TestMemoryStore_InsertIfAbsentIsRaceFree(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, err := store.InsertIfAbsent(ctx, &models.Certificate{
				ID: string(rune('a' + i)), UserID: "u", CourseID: "c", IssuedAt: time.Now(),
			})
			if assert.NoError(t, err) {
				ids[i] = stored.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestMemoryStore_ListCoursesFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, course := range []models.Course{
		{ID: "1", Name: "Python Programming Basics", Language: "english"},
		{ID: "2", Name: "Tamil: தமிழில் Python", Language: "tamil"},
		{ID: "3", Name: "React Development", Language: "english"},
	} {
		require.NoError(t, store.CreateCourse(ctx, &course))
	}

	python, err := store.ListCourses(ctx, models.CourseFilter{Search: "python"})
	require.NoError(t, err)
	assert.Len(t, python, 2)

	tamilPython, err := store.ListCourses(ctx, models.CourseFilter{Search: "PYTHON", Language: "Tamil"})
	require.NoError(t, err)
	require.Len(t, tamilPython, 1)
	assert.Equal(t, "2", tamilPython[0].ID)
}

func TestMemoryStore_VideosOrderedAndUnique(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateVideo(ctx, &models.Video{ID: "b", CourseID: "c", Order: 2}))
	require.NoError(t, store.CreateVideo(ctx, &models.Video{ID: "a", CourseID: "c", Order: 1}))
	assert.ErrorIs(t, store.CreateVideo(ctx, &models.Video{ID: "x", CourseID: "c", Order: 2}), ErrDuplicate)

	videos, err := store.ListVideos(ctx, "c")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "a", videos[0].ID)
}
