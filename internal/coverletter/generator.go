// Package coverletter generates application cover letters through an
// external text-generation collaborator.
package coverletter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/llm"
)

// Tone selects the writing style of a generated letter
type Tone string

// Supported tones
const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneEnthusiastic Tone = "enthusiastic"
)

// ParseTone validates a raw tone string; empty defaults to professional
func ParseTone(raw string) (Tone, error) {
	if raw == "" {
		return ToneProfessional, nil
	}
	t := Tone(raw)
	switch t {
	case ToneProfessional, ToneCasual, ToneEnthusiastic:
		return t, nil
	}
	return "", fmt.Errorf("unknown tone: %q", raw)
}

// ErrUnavailable indicates the text-generation collaborator could not be
// reached or is not configured. Distinct from NotFound so callers can show
// "service not configured" instead of "application missing".
type ErrUnavailable struct {
	Cause error
}

func (e *ErrUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cover letter generator unavailable: %v", e.Cause)
	}
	return "cover letter generator unavailable: no API key configured"
}

func (e *ErrUnavailable) Unwrap() error {
	return e.Cause
}

// Store persists generated letters onto applications
type Store interface {
	SetCoverLetter(ctx context.Context, id uuid.UUID, letter string) error
}

// Generator produces cover letters for applications
type Generator struct {
	client llm.Client
	store  Store
}

// New creates a Generator. A nil client means the collaborator is not
// configured; Generate then fails with ErrUnavailable without touching
// storage.
func New(client llm.Client, store Store) *Generator {
	return &Generator{client: client, store: store}
}

// Generate builds a letter for the application and stores it. The network
// call runs without holding any lock on the application row; the result is
// written in a single UPDATE afterwards, so a canceled call leaves the
// stored letter unchanged.
func (g *Generator) Generate(ctx context.Context, app *db.Application, job *db.JobPosting, profile *db.Profile, user *db.User, tone Tone) (string, error) {
	if g.client == nil {
		return "", &ErrUnavailable{}
	}

	prompt := buildPrompt(job, profile, user, tone)

	letter, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", &ErrUnavailable{Cause: err}
	}

	if err := g.store.SetCoverLetter(ctx, app.ID, letter); err != nil {
		return "", err
	}
	return letter, nil
}

// buildPrompt assembles the generation prompt from the job content and the
// candidate's profile
func buildPrompt(job *db.JobPosting, profile *db.Profile, user *db.User, tone Tone) string {
	var experience []string
	if profile.CurrentTitle != "" && profile.CurrentCompany != "" {
		experience = append(experience,
			fmt.Sprintf("Currently working as %s at %s", profile.CurrentTitle, profile.CurrentCompany))
	}
	if profile.ExperienceYears > 0 {
		experience = append(experience,
			fmt.Sprintf("%d years of professional experience", profile.ExperienceYears))
	}
	if profile.Summary != "" {
		experience = append(experience, profile.Summary)
	}
	experienceSummary := strings.Join(experience, ". ")
	if experienceSummary == "" {
		experienceSummary = "Professional with relevant experience"
	}

	var sb strings.Builder
	sb.WriteString("Write a compelling cover letter for a job application with the following details:\n\n")
	fmt.Fprintf(&sb, "Job Title: %s\n", job.Title)
	fmt.Fprintf(&sb, "Company: %s\n", job.Company)
	fmt.Fprintf(&sb, "Job Description: %s\n\n", job.Description)
	sb.WriteString("Applicant Information:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", user.Name)
	fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&sb, "- Experience: %s\n\n", experienceSummary)
	sb.WriteString("Requirements:\n")
	sb.WriteString("1. Keep it concise (3-4 paragraphs, max 300 words)\n")
	fmt.Fprintf(&sb, "2. Tone: %s\n", tone)
	sb.WriteString("3. Highlight relevant skills that match the job description\n")
	sb.WriteString("4. Include a strong opening and closing\n")
	sb.WriteString("5. Avoid generic statements\n\n")
	sb.WriteString("Format the letter professionally with proper greeting and sign-off. ")
	sb.WriteString("Respond with the letter text only.")

	return sb.String()
}
