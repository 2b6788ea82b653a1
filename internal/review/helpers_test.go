package review

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-review/internal/domain"
)

func newTestPaper(t *testing.T) *domain.Paper {
	t.Helper()
	p, err := domain.NewPaper(574, "Perseus: Removing Energy Bloat ...")
	require.NoError(t, err)
	return p
}

func newTestReview(t *testing.T, score uint8) domain.Review {
	t.Helper()
	r, err := domain.NewReview("reviewer", score)
	require.NoError(t, err)
	return r
}
