package domain //nolint:testpackage // Need access to unexported validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeReview(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	const id = "123e4567-e89b-12d3-a456-426614174000"

	tests := []struct {
		name     string
		id       string
		reviewer string
		score    uint8
		wantErr  error
	}{
		{name: "lowest score", id: id, reviewer: "r1", score: 1},
		{name: "highest score", id: id, reviewer: "r1", score: 5},
		{name: "zero score", id: id, reviewer: "r1", score: 0, wantErr: ErrInvalidScore},
		{name: "score above scale", id: id, reviewer: "r1", score: 6, wantErr: ErrInvalidScore},
		{name: "missing reviewer", id: id, score: 3},
		{name: "non uuid id", id: "review-1", reviewer: "r1", score: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := MakeReview(tt.id, tt.reviewer, tt.score, at)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.reviewer == "" || tt.id != id:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.score, r.Score)
				assert.Equal(t, at, r.SubmittedAt)
			}
		})
	}
}

func TestNewReview_GeneratesID(t *testing.T) {
	a, err := NewReview("r", 3)
	require.NoError(t, err)
	b, err := NewReview("r", 3)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	for s := MinScore; s <= MaxScore; s++ {
		assert.True(t, ValidScore(s))
	}
	assert.False(t, ValidScore(6))
}
