package service

import (
	"context"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/gemini"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/prompt"
)

// AssistantService produces the prestige synthesis note and drives the
// per-dossier conversational assistant.
type AssistantService struct {
	model *gemini.Client
	store *ProjectService
}

func NewAssistantService(model *gemini.Client, store *ProjectService) *AssistantService {
	return &AssistantService{model: model, store: store}
}

// Summarize builds the analyst prompt from the full dossier and asks
// the model for the synthesis note. Detail is ensured first so the
// documents and info sections are populated.
func (s *AssistantService) Summarize(ctx context.Context, userID, projectID string) (string, error) {
	if err := s.store.EnsureDetail(ctx, userID, projectID); err != nil {
		return "", err
	}
	project, err := s.store.Project(projectID)
	if err != nil {
		return "", err
	}
	return s.model.GenerateText(ctx, prompt.Summary(project))
}

// Chat sends one user message in the context of a dossier.
func (s *AssistantService) Chat(ctx context.Context, projectID string, history []gemini.Message, message string) (string, error) {
	project, err := s.store.Project(projectID)
	if err != nil {
		return "", err
	}
	return s.model.Chat(ctx, prompt.ChatSystem(project), history, message)
}
