package main

import (
	"context"
	"testing"

	"coursetrack-backend-go/internal/config"
	"coursetrack-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenStoresMemorySeedsCatalog(t *testing.T) {
	ctx := context.Background()
	stores, closeStores, err := openStores(ctx, config.Config{Storage: config.StorageMemory}, zap.NewNop())
	require.NoError(t, err)
	defer closeStores()

	require.NoError(t, stores.DB.PingContext(ctx))
	courses, err := stores.Catalog.ListCourses(ctx, models.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses, 8)

	videos, err := stores.Catalog.ListVideos(ctx, courses[0].ID)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
}
