package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/match"
	"github.com/jonathan/jobmatch/internal/server/middleware"
	"github.com/jonathan/jobmatch/internal/types"
)

// handleUpsertProfile creates or replaces the caller's candidate profile.
// A profile update bumps updated_at, which invalidates cached match scores.
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.authHandler.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	input := &db.ProfileInput{
		Skills:           match.NormalizeSkills(req.Skills),
		ExperienceYears:  req.ExperienceYears,
		CurrentTitle:     req.CurrentTitle,
		CurrentCompany:   req.CurrentCompany,
		Education:        req.Education,
		Certifications:   req.Certifications,
		ResumeText:       req.ResumeText,
		Summary:          req.Summary,
		DesiredTitles:    req.DesiredTitles,
		DesiredLocations: req.DesiredLocations,
		SalaryFloor:      req.SalaryFloor,
		RemotePreference: req.RemotePreferenceOrDefault(),
	}

	profile, err := s.db.UpsertProfile(r.Context(), userID, input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetProfile retrieves the caller's candidate profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := s.db.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
