package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"ecometer/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (b *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (b *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if b.putErr != nil {
		return nil, b.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestR2StoreRoundTrip(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}}
	store := NewR2Store(bucket, "ecometer", "state")
	ctx := context.Background()

	_, found, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	completed := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)
	state := models.NewUserState("u1")
	state.Goals[0].Completed = true
	state.Goals[0].DateCompleted = &completed
	state.TotalPoints = state.Goals[0].Points
	entry, err := newEntry("u1", completed, models.Categories{Travel: 2, Food: 1})
	require.NoError(t, err)
	state.DailyData = append(state.DailyData, entry)

	require.NoError(t, store.Commit(ctx, "u1", state))
	assert.Contains(t, bucket.objects, "state/u1.json")

	got, found, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, state.TotalPoints, got.TotalPoints)
	assert.Equal(t, "u1", got.Goals[0].UserID)
	assert.True(t, completed.Equal(*got.Goals[0].DateCompleted))
	require.Len(t, got.DailyData, 1)
	assert.Equal(t, entry.ID, got.DailyData[0].ID)
	assert.Equal(t, entry.TotalFootprint, got.DailyData[0].TotalFootprint)
}

func TestR2StoreCommitFailureSurfacesThroughEngine(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}, putErr: errors.New("503 slow down")}
	e := NewEngine(NewR2Store(bucket, "ecometer", "state"), NewMemoryProfiles(), StaticLeaderboard{})

	_, err := e.Goals(context.Background(), "u1")

	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
}
