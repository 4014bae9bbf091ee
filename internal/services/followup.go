package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "github.com/yungbote/lecturemate-backend/internal/clients/gemini"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  "github.com/yungbote/lecturemate-backend/internal/normalization"
  pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
  "github.com/yungbote/lecturemate-backend/internal/prompts"
  "github.com/yungbote/lecturemate-backend/internal/repos"
  "github.com/yungbote/lecturemate-backend/internal/types"
)

// FollowupService hosts the narrow single-purpose transforms that run
// against an already-stored transcript. Each one is a single round trip
// and fails independently; a failure here never invalidates the
// underlying analysis.
type FollowupService interface {
  AskDoubt(ctx context.Context, transcript, question string, history []types.ChatMessage) (string, error)
  ExplainLikeIm5(ctx context.Context, selectedText, fullTranscriptContext string) (string, error)
  EvaluateExplanation(ctx context.Context, topic, userExplanation, transcript string) (*types.Evaluation, error)
  GenerateSpeech(ctx context.Context, text string) (gemini.Audio, error)
}

type followupService struct {
  log         *logger.Logger
  ai          gemini.Client
  callLogRepo repos.AICallLogRepo
}

func NewFollowupService(log *logger.Logger, ai gemini.Client, callLogRepo repos.AICallLogRepo) FollowupService {
  return &followupService{
    log:         log.With("service", "FollowupService"),
    ai:          ai,
    callLogRepo: callLogRepo,
  }
}

func (s *followupService) AskDoubt(ctx context.Context, transcript, question string, history []types.ChatMessage) (string, error) {
  if strings.TrimSpace(transcript) == "" {
    return "", fmt.Errorf("%w: transcript is required", pkgerrors.ErrInvalidInput)
  }
  if strings.TrimSpace(question) == "" {
    return "", fmt.Errorf("%w: question is required", pkgerrors.ErrInvalidInput)
  }

  user := prompts.DoubtUserContent(transcript, history, question)
  answer, err := s.ai.GenerateText(ctx, prompts.DoubtSystemInstruction, user)
  s.logCall(ctx, "ask_doubt", user, answer, err)
  if err != nil {
    return "", fmt.Errorf("%w: %w", pkgerrors.ErrProvider, err)
  }
  return answer, nil
}

func (s *followupService) ExplainLikeIm5(ctx context.Context, selectedText, fullTranscriptContext string) (string, error) {
  if strings.TrimSpace(selectedText) == "" {
    return "", fmt.Errorf("%w: selected text is required", pkgerrors.ErrInvalidInput)
  }

  user := prompts.ELI5UserContent(selectedText, fullTranscriptContext)
  explanation, err := s.ai.GenerateText(ctx, prompts.ELI5SystemInstruction, user)
  s.logCall(ctx, "eli5", user, explanation, err)
  if err != nil {
    return "", fmt.Errorf("%w: %w", pkgerrors.ErrProvider, err)
  }
  return explanation, nil
}

func (s *followupService) EvaluateExplanation(ctx context.Context, topic, userExplanation, transcript string) (*types.Evaluation, error) {
  if strings.TrimSpace(topic) == "" {
    return nil, fmt.Errorf("%w: topic is required", pkgerrors.ErrInvalidInput)
  }
  if strings.TrimSpace(userExplanation) == "" {
    return nil, fmt.Errorf("%w: explanation is required", pkgerrors.ErrInvalidInput)
  }

  user := prompts.GraderUserContent(topic, userExplanation, transcript)
  raw, err := s.ai.GenerateJSON(ctx, prompts.GraderSystemInstruction, user, prompts.EvaluationSchema())
  s.logCall(ctx, "evaluate_explanation", user, raw, err)
  if err != nil {
    return nil, fmt.Errorf("%w: %w", pkgerrors.ErrProvider, err)
  }

  clean, err := normalization.CleanModelJSON(raw)
  if err != nil {
    return nil, err
  }
  var eval types.Evaluation
  if err := json.Unmarshal([]byte(clean), &eval); err != nil {
    return nil, fmt.Errorf("%w: %v: %s", pkgerrors.ErrMalformedResponse, err, normalization.Truncate(clean, 500))
  }
  if eval.MissingPoints == nil {
    eval.MissingPoints = []string{}
  }
  return &eval, nil
}

func (s *followupService) GenerateSpeech(ctx context.Context, text string) (gemini.Audio, error) {
  if strings.TrimSpace(text) == "" {
    return gemini.Audio{}, fmt.Errorf("%w: text is required", pkgerrors.ErrInvalidInput)
  }

  audio, err := s.ai.GenerateSpeech(ctx, text)
  s.logCall(ctx, "generate_speech", text, audio.MimeType, err)
  if err != nil {
    return gemini.Audio{}, fmt.Errorf("%w: %w", pkgerrors.ErrProvider, err)
  }
  return audio, nil
}

func (s *followupService) logCall(ctx context.Context, callType, prompt, response string, callErr error) {
  logCallRow(ctx, s.log, s.callLogRepo, s.ai.Model(), callType, prompt, response, nil, callErr)
}
