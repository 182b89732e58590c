package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobsMinScoreWithoutTokenRejected(t *testing.T) {
	s := &Server{jwtService: testJWTService()}

	req := httptest.NewRequest(http.MethodGet, "/jobs?min_score=50", nil)
	rec := httptest.NewRecorder()
	s.handleListJobs(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListJobsMinScoreInvalidValue(t *testing.T) {
	s := &Server{jwtService: testJWTService()}

	for _, raw := range []string{"abc", "-1", "150", "12.5"} {
		req := httptest.NewRequest(http.MethodGet, "/jobs?min_score="+raw, nil)
		rec := httptest.NewRecorder()
		s.handleListJobs(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "min_score=%s", raw)
	}
}

func TestBearerUserIDValidToken(t *testing.T) {
	s := &Server{jwtService: testJWTService()}
	userID := uuid.New()
	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	got, err := s.bearerUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestBearerUserIDMissingOrMalformedHeader(t *testing.T) {
	s := &Server{jwtService: testJWTService()}

	for _, header := range []string{"", "Bearer", "Basic abc123", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		_, err := s.bearerUserID(req)
		assert.Error(t, err, "header=%q", header)
	}
}
