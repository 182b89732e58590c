package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/jobmatch/internal/coverletter"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/lifecycle"
	"github.com/jonathan/jobmatch/internal/server/middleware"
	"github.com/jonathan/jobmatch/internal/types"
)

// handleCreateApplication starts tracking an application for a stored posting
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.JobID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "job_id is required")
		return
	}

	job, err := s.db.GetPostingByID(ctx, req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	app, err := s.db.CreateApplication(ctx, userID, req.JobID, req.Notes)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			s.errorResponse(w, http.StatusConflict, "Application for this job already exists")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListApplications lists the caller's applications, newest first
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := db.ListApplicationsOptions{
		Limit:  parseQueryInt(r, "limit", 50, 100),
		Offset: parseQueryInt(r, "offset", 0, 0),
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status, err := lifecycle.Parse(statusStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Status = string(status)
	}

	apps, err := s.db.ListApplicationsByUser(r.Context(), userID, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}

// getOwnedApplication loads an application and hides other users' records
// behind the same not-found response
func (s *Server) getOwnedApplication(w http.ResponseWriter, r *http.Request, userID uuid.UUID) *db.Application {
	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return nil
	}

	app, err := s.db.GetApplication(r.Context(), appID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if app == nil || app.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return nil
	}
	return app
}

// handleGetApplication retrieves one of the caller's applications
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	app := s.getOwnedApplication(w, r, userID)
	if app == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleUpdateApplication moves an application to a new status
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	app := s.getOwnedApplication(w, r, userID)
	if app == nil {
		return
	}

	var req types.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	to, err := lifecycle.Parse(req.Status)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	from := lifecycle.Status(app.Status)
	if !s.policy.Allowed(from, to) {
		transErr := &ErrTransition{From: app.Status, To: string(to)}
		s.errorResponse(w, HTTPStatus(transErr), transErr.Error())
		return
	}

	updated, err := s.db.UpdateApplicationStatus(r.Context(), app.ID, string(to), req.Notes)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteApplication removes one of the caller's applications
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	app := s.getOwnedApplication(w, r, userID)
	if app == nil {
		return
	}

	deleted, err := s.db.DeleteApplication(r.Context(), app.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCoverLetter generates and stores a cover letter for an application
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	app := s.getOwnedApplication(w, r, userID)
	if app == nil {
		return
	}

	// Tone is optional; an empty body means defaults
	var req types.CoverLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tone, err := coverletter.ParseTone(req.Tone)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.db.GetPostingByID(ctx, app.JobID)
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
		s.errorResponse(w, http.StatusNotFound, "Profile not found; create one before generating a cover letter")
		return
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	letter, err := s.generator.Generate(ctx, app, job, profile, user, tone)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"application_id": app.ID,
		"cover_letter":   letter,
		"tone":           string(tone),
	})
}

// handleStats returns per-status application counts for the caller
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := s.db.GetStats(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}
