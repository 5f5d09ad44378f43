// Package tailoring rewrites parts of a resume for a pasted job description
// with an LLM and applies the result through store operations.
package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/sirupsen/logrus"
)

// Request errors.
var (
	ErrEmptyJobDescription = errors.New("job description is required")
	ErrNothingSelected     = errors.New("select at least one of summary, experience or skills")
)

// Request selects what to generate for a job description.
type Request struct {
	JobDescription string `json:"jobDescription"`
	Summary        bool   `json:"summary"`
	Experience     bool   `json:"experience"`
	Skills         bool   `json:"skills"`
}

// Validate checks the request before any model call.
func (r Request) Validate() error {
	if strings.TrimSpace(r.JobDescription) == "" {
		return ErrEmptyJobDescription
	}
	if !r.Summary && !r.Experience && !r.Skills {
		return ErrNothingSelected
	}
	return nil
}

// ExperienceSuggestion is a rewritten description for an existing entry.
type ExperienceSuggestion struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SkillSuggestion is a skill the job asks for.
type SkillSuggestion struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Suggestions is the model output.
type Suggestions struct {
	Summary    string                 `json:"summary,omitempty"`
	Experience []ExperienceSuggestion `json:"experience,omitempty"`
	Skills     []SkillSuggestion      `json:"skills,omitempty"`
}

// Result reports what Apply changed.
type Result struct {
	SummaryUpdated    bool     `json:"summaryUpdated"`
	ExperienceUpdated []string `json:"experienceUpdated"`
	SkillsAdded       []string `json:"skillsAdded"`
}

// GenerationError wraps a failed or unusable model response.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tailoring failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tailoring failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Service runs tailoring requests against an LLM client.
type Service struct {
	client llm.Client
	logger *logrus.Logger
}

// NewService returns a service using client.
func NewService(client llm.Client, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logging.OrStandard(logger)}
}

// BuildPrompt renders the tailoring prompt for doc and req.
func BuildPrompt(doc resume.Document, req Request) (string, error) {
	// the model only needs content, not contact details
	view := struct {
		Role       string              `json:"roleApplyingFor,omitempty"`
		Summary    string              `json:"summary,omitempty"`
		Experience []resume.Experience `json:"experience"`
		Education  []resume.Education  `json:"education"`
		Skills     []resume.Skill      `json:"skills"`
	}{
		Role:       doc.PersonalInfo.RoleApplyingFor,
		Summary:    doc.PersonalInfo.Summary,
		Experience: doc.Experience,
		Education:  doc.Education,
		Skills:     doc.Skills,
	}
	body, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}

	var parts strings.Builder
	for _, p := range []struct {
		on  bool
		key string
	}{
		{req.Summary, "part-summary"},
		{req.Experience, "part-experience"},
		{req.Skills, "part-skills"},
	} {
		if !p.on {
			continue
		}
		text, err := prompts.Get(prompts.Tailoring, p.key)
		if err != nil {
			return "", err
		}
		parts.WriteString(text)
		parts.WriteString("\n")
	}

	return prompts.Render(prompts.Tailoring, "tailor-resume", map[string]string{
		"JobDescription": strings.TrimSpace(req.JobDescription),
		"Resume":         string(body),
		"Parts":          parts.String(),
	})
}

// ParseSuggestions validates and decodes a model response.
func ParseSuggestions(raw string) (*Suggestions, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateTailoringResponse([]byte(cleaned)); err != nil {
		return nil, &GenerationError{Message: "response does not match schema", Cause: err}
	}
	var s Suggestions
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, &GenerationError{Message: "failed to decode response", Cause: err}
	}
	return &s, nil
}

// Suggest asks the model for suggestions for doc.
func (s *Service) Suggest(ctx context.Context, doc resume.Document, req Request) (*Suggestions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(doc, req)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Message: "model request failed", Cause: err}
	}
	return ParseSuggestions(raw)
}

// Tailor runs Suggest on the store's document and applies the result.
func (s *Service) Tailor(ctx context.Context, store *resume.Store, req Request) (*Result, error) {
	suggestions, err := s.Suggest(ctx, store.Document(), req)
	if err != nil {
		return nil, err
	}
	result := Apply(store, req, suggestions)
	s.logger.WithFields(logrus.Fields{
		"summary":    result.SummaryUpdated,
		"experience": len(result.ExperienceUpdated),
		"skills":     len(result.SkillsAdded),
	}).Info("Applied tailoring suggestions")
	return result, nil
}

// Apply writes the requested parts of sg into store. Experience ids that no
// longer exist and skills already present (case-insensitive) are skipped.
func Apply(store *resume.Store, req Request, sg *Suggestions) *Result {
	result := &Result{ExperienceUpdated: []string{}, SkillsAdded: []string{}}
	doc := store.Document()

	if req.Summary {
		if summary := strings.TrimSpace(sg.Summary); summary != "" {
			store.UpdatePersonalInfo(resume.PersonalInfoPatch{Summary: resume.String(summary)})
			result.SummaryUpdated = true
		}
	}

	if req.Experience {
		known := make(map[string]bool, len(doc.Experience))
		for _, e := range doc.Experience {
			known[e.ID] = true
		}
		for _, e := range sg.Experience {
			desc := strings.TrimSpace(e.Description)
			if !known[e.ID] || desc == "" {
				continue
			}
			store.UpdateExperience(e.ID, resume.ExperiencePatch{Description: resume.String(desc)})
			result.ExperienceUpdated = append(result.ExperienceUpdated, e.ID)
		}
	}

	if req.Skills {
		have := make(map[string]bool, len(doc.Skills))
		for _, sk := range doc.Skills {
			have[strings.ToLower(strings.TrimSpace(sk.Name))] = true
		}
		for _, sk := range sg.Skills {
			name := strings.TrimSpace(sk.Name)
			key := strings.ToLower(name)
			if name == "" || have[key] {
				continue
			}
			level := sk.Level
			if !resume.IsValidLevel(level) {
				level = resume.LevelIntermediate
			}
			store.AddSkill(resume.Skill{Name: name, Level: level})
			have[key] = true
			result.SkillsAdded = append(result.SkillsAdded, name)
		}
	}

	return result
}
