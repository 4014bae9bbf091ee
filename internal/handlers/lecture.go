package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
  "github.com/yungbote/lecturemate-backend/internal/services"
)

type LectureHandler struct {
  log        *logger.Logger
  lectureSvc services.LectureService
}

func NewLectureHandler(log *logger.Logger, lectureSvc services.LectureService) *LectureHandler {
  return &LectureHandler{
    log:        log.With("handler", "LectureHandler"),
    lectureSvc: lectureSvc,
  }
}

type processURLRequest struct {
  URL       string `json:"url"`
  Grounding bool   `json:"grounding"`
}

// POST /api/process-url
// Full pipeline for a YouTube URL; responds with the normalized
// LectureAnalysis.
func (h *LectureHandler) ProcessURL(c *gin.Context) {
  var req processURLRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  analysis, err := h.lectureSvc.ProcessURL(c.Request.Context(), req.URL, req.Grounding)
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, analysis)
}

type processTextRequest struct {
  Text string `json:"text"`
}

// POST /api/process-text
// Same pipeline over a pasted transcript.
func (h *LectureHandler) ProcessText(c *gin.Context) {
  var req processTextRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
    return
  }

  analysis, err := h.lectureSvc.ProcessText(c.Request.Context(), req.Text)
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, analysis)
}

// GET /api/lectures
// Saved analyses, newest first.
func (h *LectureHandler) ListLectures(c *gin.Context) {
  lectures, err := h.lectureSvc.List(c.Request.Context())
  if err != nil {
    MapError(c, h.log, err)
    return
  }
  RespondOK(c, lectures)
}

// DELETE /api/lectures/:id
// Removing an unknown id is a no-op, not an error.
func (h *LectureHandler) DeleteLecture(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_input", pkgerrors.ErrInvalidInput)
    return
  }

  if err := h.lectureSvc.Delete(c.Request.Context(), id); err != nil {
    MapError(c, h.log, err)
    return
  }
  c.Status(http.StatusNoContent)
}
