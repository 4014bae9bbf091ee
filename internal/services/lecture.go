package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "github.com/yungbote/lecturemate-backend/internal/clients/gemini"
  "github.com/yungbote/lecturemate-backend/internal/clients/youtube"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  "github.com/yungbote/lecturemate-backend/internal/normalization"
  pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
  "github.com/yungbote/lecturemate-backend/internal/prompts"
  "github.com/yungbote/lecturemate-backend/internal/repos"
  "github.com/yungbote/lecturemate-backend/internal/types"
)

type LectureService interface {
  // ProcessURL runs the full pipeline for a YouTube URL: transcript
  // acquisition, generation, normalization, persistence. With grounding
  // enabled the transcript fetch is skipped and the model consults live
  // search instead.
  ProcessURL(ctx context.Context, url string, grounding bool) (*types.LectureAnalysis, error)
  // ProcessText runs the same pipeline over a pasted transcript.
  ProcessText(ctx context.Context, text string) (*types.LectureAnalysis, error)
  List(ctx context.Context) ([]*types.LectureAnalysis, error)
  Delete(ctx context.Context, id uuid.UUID) error
}

type lectureService struct {
  log         *logger.Logger
  ai          gemini.Client
  transcripts youtube.Client
  lectureRepo repos.LectureRepo
  callLogRepo repos.AICallLogRepo
}

func NewLectureService(log *logger.Logger, ai gemini.Client, transcripts youtube.Client, lectureRepo repos.LectureRepo, callLogRepo repos.AICallLogRepo) LectureService {
  return &lectureService{
    log:         log.With("service", "LectureService"),
    ai:          ai,
    transcripts: transcripts,
    lectureRepo: lectureRepo,
    callLogRepo: callLogRepo,
  }
}

func (s *lectureService) ProcessURL(ctx context.Context, url string, grounding bool) (*types.LectureAnalysis, error) {
  url = strings.TrimSpace(url)
  if url == "" {
    return nil, fmt.Errorf("%w: url is required", pkgerrors.ErrInvalidInput)
  }

  videoID, err := youtube.ExtractVideoID(url)
  if err != nil {
    return nil, err
  }

  if grounding {
    return s.analyzeGrounded(ctx, url)
  }

  transcript, err := s.transcripts.FetchTranscript(ctx, videoID)
  if err != nil {
    return nil, err
  }

  return s.analyzeTranscript(ctx, transcript, url)
}

func (s *lectureService) ProcessText(ctx context.Context, text string) (*types.LectureAnalysis, error) {
  if strings.TrimSpace(text) == "" {
    return nil, fmt.Errorf("%w: transcript text is required", pkgerrors.ErrInvalidInput)
  }
  return s.analyzeTranscript(ctx, text, "")
}

// analyzeTranscript is the default path: JSON-mode generation over the
// supplied transcript, which also becomes the stored source of truth.
func (s *lectureService) analyzeTranscript(ctx context.Context, transcript, sourceURL string) (*types.LectureAnalysis, error) {
  system := prompts.AnalysisSystemInstruction
  user := prompts.AnalysisUserContent(transcript)

  raw, err := s.ai.GenerateJSON(ctx, system, user, nil)
  if err != nil {
    s.logCall(ctx, "lecture_analysis", user, "", nil, err)
    return nil, fmt.Errorf("%w: %w", pkgerrors.ErrProvider, err)
  }

  return s.finish(ctx, "lecture_analysis", user, raw, sourceURL, transcript)
}

// analyzeGrounded lets the model consult live search; the transcript
// field is trusted from the model in this mode since we never had one.
func (s *lectureService) analyzeGrounded(ctx context.Context, url string) (*types.LectureAnalysis, error) {
  system := prompts.GroundedAnalysisSystemInstruction
  user := prompts.GroundedUserContent(url)

  raw, err := s.ai.GenerateGrounded(ctx, system, user)
  if err != nil {
    s.logCall(ctx, "lecture_analysis_grounded", user, "", nil, err)
    return nil, fmt.Errorf("%w: %w", pkgerrors.ErrProvider, err)
  }

  return s.finish(ctx, "lecture_analysis_grounded", user, raw, url, "")
}

// finish normalizes the raw output and persists the artifact. Nothing is
// stored unless normalization fully succeeds.
func (s *lectureService) finish(ctx context.Context, callType, prompt, raw, sourceURL, transcript string) (*types.LectureAnalysis, error) {
  analysis, err := normalization.NormalizeLecture(raw, sourceURL, transcript)
  if err != nil {
    s.logCall(ctx, callType, prompt, raw, nil, err)
    return nil, err
  }
  s.logCall(ctx, callType, prompt, raw, &analysis.ID, nil)

  if err := s.lectureRepo.Save(ctx, nil, analysis); err != nil {
    return nil, err
  }
  return analysis, nil
}

func (s *lectureService) List(ctx context.Context) ([]*types.LectureAnalysis, error) {
  return s.lectureRepo.List(ctx, nil)
}

func (s *lectureService) Delete(ctx context.Context, id uuid.UUID) error {
  return s.lectureRepo.Delete(ctx, nil, id)
}

// logCall appends an audit row for one provider round trip. The raw
// payload is truncated for diagnosis and never shown to the end user.
// Audit failures are non-fatal.
func (s *lectureService) logCall(ctx context.Context, callType, prompt, response string, analysisID *uuid.UUID, callErr error) {
  logCallRow(ctx, s.log, s.callLogRepo, s.ai.Model(), callType, prompt, response, analysisID, callErr)
}

func logCallRow(ctx context.Context, log *logger.Logger, callLogRepo repos.AICallLogRepo, model, callType, prompt, response string, analysisID *uuid.UUID, callErr error) {
  row := &types.AICallLog{
    AnalysisID: analysisID,
    CallType:   callType,
    Model:      model,
    Prompt:     normalization.Truncate(prompt, 2000),
    Response:   normalization.Truncate(response, 2000),
    Success:    callErr == nil,
  }
  if callErr != nil {
    row.Error = callErr.Error()
  }
  usage, err := json.Marshal(map[string]int{
    "prompt_chars":   len(prompt),
    "response_chars": len(response),
  })
  if err == nil {
    row.Usage = datatypes.JSON(usage)
  }
  if _, err := callLogRepo.Create(ctx, nil, []*types.AICallLog{row}); err != nil {
    log.Warn("Failed to write ai call log", "call_type", callType, "error", err)
  }
}
