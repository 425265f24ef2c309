// Package curriculum validates generation requests and orchestrates the
// agent pipeline that turns one request into a set of PDF documents.
package curriculum

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/currforge/currforge/agent"
)

// Request is the payload a client submits to start a generation run.
type Request struct {
	Grade              string                 `json:"grade"`
	Subject            string                 `json:"subject"`
	State              string                 `json:"state"`
	ZipCode            string                 `json:"zipcode"`
	Book               string                 `json:"book"`
	Duration           string                 `json:"duration"`
	LearningObjectives string                 `json:"learningObjectives"`
	Email              string                 `json:"email"`
	SpecialEducation   agent.SpecialEducation `json:"specialEducation"`
	AdditionalContext  string                 `json:"additionalContext"`
	FocusAreas         []string               `json:"focusAreas"`
}

// Validate checks the required fields. It returns all problems at once so a
// client can fix the whole form in one round trip.
func (r *Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Grade) == "" {
		missing = append(missing, "grade")
	}
	if strings.TrimSpace(r.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(r.LearningObjectives) == "" {
		missing = append(missing, "learningObjectives")
	}
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("curriculum: missing required fields: %s", strings.Join(missing, ", "))
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("curriculum: invalid email address %q", r.Email)
	}
	return nil
}

// PrepareContext assembles the shared agent context from a validated
// request, resolving the book slug against the catalog.
func (r *Request) PrepareContext() *agent.Context {
	info, _ := LookupBook(r.Book)
	return &agent.Context{
		Grade:              r.Grade,
		Subject:            r.Subject,
		State:              r.State,
		ZipCode:            r.ZipCode,
		Book:               r.Book,
		BookTitle:          fmt.Sprintf("%s by %s", info.Title, info.Author),
		BookInfo:           info,
		Duration:           r.Duration,
		LearningObjectives: r.LearningObjectives,
		SpecialEducation:   r.SpecialEducation,
		AdditionalContext:  r.AdditionalContext,
		FocusAreas:         r.FocusAreas,
	}
}
