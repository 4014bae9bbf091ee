package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
  "github.com/yungbote/lecturemate-backend/internal/pkg/httpx"
)

type APIError struct {
  Message     string	`json:"message"`
  Code	      string	`json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error	      APIError	`json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// MapError converts a module-level failure into the single user-facing
// response for this action. Raw model payloads ride on the error chain
// for logs only; the client gets a generic message for those.
func MapError(c *gin.Context, log *logger.Logger, err error) {
  switch {
  case errors.Is(err, pkgerrors.ErrInvalidInput):
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
  case errors.Is(err, pkgerrors.ErrNoTranscript):
    RespondError(c, http.StatusUnprocessableEntity, "no_transcript", err)
  case errors.Is(err, pkgerrors.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, pkgerrors.ErrMalformedResponse):
    log.Error("Malformed model response", "error", err)
    RespondError(c, http.StatusInternalServerError, "generation_failed",
      errors.New("the model response could not be processed"))
  default:
    sc := httpx.StatusCode(err)
    switch {
    case httpx.IsRateLimitStatus(sc):
      log.Warn("Provider throttled", "error", err)
      RespondError(c, http.StatusTooManyRequests, "rate_limited", err)
    case httpx.IsAuthStatus(sc):
      log.Error("Provider rejected the configured credential", "error", err)
      RespondError(c, http.StatusInternalServerError, "provider_auth",
        errors.New("the generation provider rejected the configured credential"))
    default:
      log.Error("Request failed", "error", err)
      RespondError(c, http.StatusInternalServerError, "provider_error", err)
    }
  }
}
