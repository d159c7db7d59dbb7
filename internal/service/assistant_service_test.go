package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/school-pay-api/pkg/errors"
)

type assistantBackendStub struct {
	available bool
	answer    string
	err       error
}

func (s *assistantBackendStub) Available() bool { return s.available }

func (s *assistantBackendStub) Ask(ctx context.Context, question string) (string, error) {
	return s.answer, s.err
}

func TestAskReturnsAnswer(t *testing.T) {
	svc := NewAssistantService(&assistantBackendStub{available: true, answer: "Pay by the 5th."}, zap.NewNop())

	answer, err := svc.Ask(context.Background(), "When is tuition due?")
	require.NoError(t, err)
	assert.Equal(t, "Pay by the 5th.", answer)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc := NewAssistantService(&assistantBackendStub{available: true}, zap.NewNop())

	_, err := svc.Ask(context.Background(), "   ")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAskReportsDisabledBackend(t *testing.T) {
	svc := NewAssistantService(&assistantBackendStub{available: false}, zap.NewNop())

	_, err := svc.Ask(context.Background(), "Hello?")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrAssistantDisabled.Code, appErr.Code)
}

func TestAskWrapsBackendFailures(t *testing.T) {
	svc := NewAssistantService(&assistantBackendStub{available: true, err: errors.New("timeout")}, zap.NewNop())

	_, err := svc.Ask(context.Background(), "Hello?")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrRemoteUnavailable.Code, appErr.Code)
}
