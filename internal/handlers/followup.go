package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  "github.com/yungbote/lecturemate-backend/internal/services"
  "github.com/yungbote/lecturemate-backend/internal/types"
)

type FollowupHandler struct {
  log         *logger.Logger
  followupSvc services.FollowupService
}

func NewFollowupHandler(log *logger.Logger, followupSvc services.FollowupService) *FollowupHandler {
  return &FollowupHandler{
    log:         log.With("handler", "FollowupHandler"),
    followupSvc: followupSvc,
  }
}

type askDoubtRequest struct {
  Transcript string              `json:"transcript"`
  Question   string              `json:"question"`
  History    []types.ChatMessage `json:"history"`
}

// POST /api/ask-doubt
func (h *FollowupHandler) AskDoubt(c *gin.Context) {
  var req askDoubtRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  answer, err := h.followupSvc.AskDoubt(c.Request.Context(), req.Transcript, req.Question, req.History)
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"answer": answer})
}

type eli5Request struct {
  SelectedText          string `json:"selectedText"`
  FullTranscriptContext string `json:"fullTranscriptContext"`
}

// POST /api/explain-like-im-5
func (h *FollowupHandler) ExplainLikeIm5(c *gin.Context) {
  var req eli5Request
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  explanation, err := h.followupSvc.ExplainLikeIm5(c.Request.Context(), req.SelectedText, req.FullTranscriptContext)
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"explanation": explanation})
}

type generateSpeechRequest struct {
  Text string `json:"text"`
}

// POST /api/generate-speech
// Audio stays base64; the caller decodes and plays it.
func (h *FollowupHandler) GenerateSpeech(c *gin.Context) {
  var req generateSpeechRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  audio, err := h.followupSvc.GenerateSpeech(c.Request.Context(), req.Text)
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"audioData": audio.Base64Data, "mimeType": audio.MimeType})
}

type evaluateExplanationRequest struct {
  Topic           string `json:"topic"`
  UserExplanation string `json:"userExplanation"`
  Transcript      string `json:"transcript"`
}

// POST /api/evaluate-explanation
func (h *FollowupHandler) EvaluateExplanation(c *gin.Context) {
  var req evaluateExplanationRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  eval, err := h.followupSvc.EvaluateExplanation(c.Request.Context(), req.Topic, req.UserExplanation, req.Transcript)
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, eval)
}
