package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/match"
	"github.com/jonathan/jobmatch/internal/server/middleware"
	"github.com/jonathan/jobmatch/internal/types"
)

// parseQueryInt parses an integer query parameter with a default and cap.
// A maxValue of 0 means uncapped.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// ListJobsResponse represents the response for listing job postings
type ListJobsResponse struct {
	Jobs   []db.JobPosting `json:"jobs"`
	Count  int             `json:"count"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// bearerUserID resolves the caller on routes where authentication is
// optional. It returns an error when no valid bearer token is present.
func (s *Server) bearerUserID(r *http.Request) (uuid.UUID, error) {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return uuid.Nil, errors.New("missing bearer token")
	}
	claims, err := s.jwtService.ValidateToken(fields[1])
	if err != nil {
		return uuid.Nil, err
	}
	return claims.GetUserID(), nil
}

// handleListJobs lists stored job postings with optional filters and
// pagination. The min_score filter matches against the caller's cached match
// scores, so it requires a bearer token even though the route is public.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	opts := db.ListPostingsOptions{
		Source:  r.URL.Query().Get("source"),
		Company: r.URL.Query().Get("company"),
		Limit:   limit,
		Offset:  offset,
	}

	if raw := r.URL.Query().Get("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 || minScore > 100 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid min_score; expected an integer between 0 and 100")
			return
		}
		userID, err := s.bearerUserID(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "min_score filtering requires authentication")
			return
		}
		opts.MinScore = &minScore
		opts.UserID = userID
	}

	jobs, total, err := s.db.ListPostings(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:   jobs,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// handleGetJob retrieves a job posting by its ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetPostingByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleMatchJob scores a job against the caller's profile. Scores are cached
// per (job, user) and recomputed when the profile changed since the cached
// score was written.
func (s *Server) handleMatchJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetPostingByID(ctx, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	profile, err := s.db.GetProfileByUserID(ctx, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found; create one before matching")
		return
	}

	cached, err := s.db.GetMatchScore(ctx, jobID, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if cached != nil && !cached.IsStale(profile.UpdatedAt) {
		s.jsonResponse(w, http.StatusOK, types.MatchResponse{
			JobID:      jobID,
			UserID:     userID,
			Score:      cached.Score,
			Cached:     true,
			ComputedAt: cached.ComputedAt,
		})
		return
	}

	experienceMin := 0
	if job.ExperienceMin != nil {
		experienceMin = *job.ExperienceMin
	}
	score := match.Score(
		match.Job{
			Title:          job.Title,
			RequiredSkills: job.RequiredSkills,
			ExperienceMin:  experienceMin,
		},
		match.Candidate{
			Skills:          profile.Skills,
			ExperienceYears: profile.ExperienceYears,
			DesiredTitles:   profile.DesiredTitles,
		},
	)

	stored, err := s.db.UpsertMatchScore(ctx, jobID, userID, score, profile.UpdatedAt)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.MatchResponse{
		JobID:      jobID,
		UserID:     userID,
		Score:      stored.Score,
		Cached:     false,
		ComputedAt: stored.ComputedAt,
	})
}
