package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanta-estates/listings-api/internal/logger"
	"github.com/vasanta-estates/listings-api/internal/models"
	"github.com/vasanta-estates/listings-api/internal/services"
)

func waitForDetailState(t *testing.T, updates <-chan DetailSnapshot) DetailSnapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-updates:
			if s.State != DetailLoading {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for controller to settle")
		}
	}
}

func TestDetailController_Found(t *testing.T) {
	property := &models.Property{Slug: "cedar-ridge-villa-bhimtal", Title: "Cedar Ridge Villa"}
	fetch := func(ctx context.Context, slug string) (*models.Property, error) {
		return property, nil
	}

	updates := make(chan DetailSnapshot, 8)
	ctrl := NewDetailController(fetch, logger.NewNop(), func(s DetailSnapshot) { updates <- s })

	ctrl.SetSlug(context.Background(), "cedar-ridge-villa-bhimtal")

	settled := waitForDetailState(t, updates)
	assert.Equal(t, DetailFound, settled.State)
	require.NotNil(t, settled.Property)
	// The record's slug must echo the requested slug.
	assert.Equal(t, settled.Slug, settled.Property.Slug)
}

func TestDetailController_NotFoundIsDistinctFromFailed(t *testing.T) {
	fetch := func(ctx context.Context, slug string) (*models.Property, error) {
		return nil, services.ErrPropertyNotFound
	}

	updates := make(chan DetailSnapshot, 8)
	ctrl := NewDetailController(fetch, logger.NewNop(), func(s DetailSnapshot) { updates <- s })

	ctrl.SetSlug(context.Background(), "no-such-property")

	settled := waitForDetailState(t, updates)
	assert.Equal(t, DetailNotFound, settled.State)
	assert.Nil(t, settled.Property)
	assert.NoError(t, settled.Err)
}

func TestDetailController_TransportFailureRetainsError(t *testing.T) {
	storeErr := errors.New("store unreachable")
	fetch := func(ctx context.Context, slug string) (*models.Property, error) {
		return nil, storeErr
	}

	updates := make(chan DetailSnapshot, 8)
	ctrl := NewDetailController(fetch, logger.NewNop(), func(s DetailSnapshot) { updates <- s })

	ctrl.SetSlug(context.Background(), "cedar-ridge-villa-bhimtal")

	settled := waitForDetailState(t, updates)
	assert.Equal(t, DetailFailed, settled.State)
	assert.ErrorIs(t, settled.Err, storeErr)
	assert.Nil(t, settled.Property)
}

func TestDetailController_SlugConflictIsFailed(t *testing.T) {
	fetch := func(ctx context.Context, slug string) (*models.Property, error) {
		return nil, services.ErrSlugConflict
	}

	updates := make(chan DetailSnapshot, 8)
	ctrl := NewDetailController(fetch, logger.NewNop(), func(s DetailSnapshot) { updates <- s })

	ctrl.SetSlug(context.Background(), "ambiguous")

	settled := waitForDetailState(t, updates)
	assert.Equal(t, DetailFailed, settled.State)
	assert.ErrorIs(t, settled.Err, services.ErrSlugConflict)
}

func TestDetailController_StaleSlugDiscarded(t *testing.T) {
	// Navigate to "old", then to "new" before "old" resolves; "old"
	// resolving late must not overwrite "new".
	releaseOld := make(chan struct{})
	returned := make(chan string, 2)

	fetch := func(ctx context.Context, slug string) (*models.Property, error) {
		defer func() { returned <- slug }()
		if slug == "old" {
			<-releaseOld
		}
		return &models.Property{Slug: slug}, nil
	}

	updates := make(chan DetailSnapshot, 16)
	ctrl := NewDetailController(fetch, logger.NewNop(), func(s DetailSnapshot) { updates <- s })

	ctx := context.Background()
	ctrl.SetSlug(ctx, "old")
	ctrl.SetSlug(ctx, "new")

	settled := waitForDetailState(t, updates)
	require.Equal(t, DetailFound, settled.State)
	require.Equal(t, "new", settled.Slug)

	close(releaseOld)
	for i := 0; i < 2; i++ {
		<-returned
	}
	time.Sleep(50 * time.Millisecond)

	final := ctrl.Snapshot()
	assert.Equal(t, DetailFound, final.State)
	assert.Equal(t, "new", final.Slug)
	require.NotNil(t, final.Property)
	assert.Equal(t, "new", final.Property.Slug)
}
