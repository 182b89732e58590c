package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostingsFilterEmpty(t *testing.T) {
	join, where, args := ListPostingsOptions{}.filter()

	assert.Empty(t, join)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestListPostingsFilterSourceAndCompany(t *testing.T) {
	join, where, args := ListPostingsOptions{Source: "arbeitnow", Company: "acme"}.filter()

	assert.Empty(t, join)
	assert.Equal(t, "WHERE source = $1 AND company ILIKE $2", where)
	require.Len(t, args, 2)
	assert.Equal(t, "arbeitnow", args[0])
	assert.Equal(t, "%acme%", args[1])
}

func TestListPostingsFilterMinScoreJoinsMatchScores(t *testing.T) {
	userID := uuid.New()
	minScore := 70
	join, where, args := ListPostingsOptions{MinScore: &minScore, UserID: userID}.filter()

	assert.Equal(t, "JOIN match_scores ms ON ms.job_id = job_postings.id", join)
	assert.Equal(t, "WHERE ms.user_id = $1 AND ms.score >= $2", where)
	require.Len(t, args, 2)
	assert.Equal(t, userID, args[0])
	assert.Equal(t, 70, args[1])
}

func TestListPostingsFilterCombined(t *testing.T) {
	userID := uuid.New()
	minScore := 50
	join, where, args := ListPostingsOptions{
		Source:   "arbeitnow",
		MinScore: &minScore,
		UserID:   userID,
	}.filter()

	assert.NotEmpty(t, join)
	assert.Equal(t, "WHERE source = $1 AND ms.user_id = $2 AND ms.score >= $3", where)
	require.Len(t, args, 3)
}
