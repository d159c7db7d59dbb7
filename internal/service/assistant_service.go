package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
)

type assistantBackend interface {
	Available() bool
	Ask(ctx context.Context, question string) (string, error)
}

// AssistantService answers help-center questions through the configured
// model backend. Without credentials it degrades to an explicit unavailable
// state instead of failing requests at random.
type AssistantService struct {
	backend assistantBackend
	logger  *zap.Logger
}

// NewAssistantService constructs an assistant service.
func NewAssistantService(backend assistantBackend, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{backend: backend, logger: logger}
}

// Available reports whether questions can be served.
func (s *AssistantService) Available() bool {
	return s.backend != nil && s.backend.Available()
}

// Ask forwards a question and returns the answer.
func (s *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "question is required")
	}
	if !s.Available() {
		return "", appErrors.Clone(appErrors.ErrAssistantDisabled, "assistant is not configured")
	}

	answer, err := s.backend.Ask(ctx, question)
	if err != nil {
		s.logger.Warn("assistant call failed", zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "assistant backend unavailable")
	}
	return answer, nil
}
