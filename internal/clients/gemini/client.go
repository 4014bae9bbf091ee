package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yungbote/lecturemate-backend/internal/logger"
	"github.com/yungbote/lecturemate-backend/internal/utils"
)

// Audio is a synthesized speech payload. Data stays base64 encoded, as
// delivered by the provider; callers decode when they play it.
type Audio struct {
	Base64Data string
	MimeType   string
}

// Client is the Gemini API client used by the rest of the backend. One
// instance is constructed at process start and injected into every
// service; nothing holds a module-level client.
type Client interface {
	// Plain text (no schema)
	GenerateText(ctx context.Context, system string, user string) (string, error)

	// JSON-mode output. schema may be nil (responseMimeType only) or a
	// formal response schema the provider enforces directly.
	GenerateJSON(ctx context.Context, system string, user string, schema map[string]any) (string, error)

	// Web-search grounded generation: the model may consult live search
	// instead of a supplied transcript.
	GenerateGrounded(ctx context.Context, system string, user string) (string, error)

	// Speech synthesis via the audio-modality response.
	GenerateSpeech(ctx context.Context, text string) (Audio, error)

	// Model reports the text model in use, for call auditing.
	Model() string
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	ttsModel   string
	ttsVoice   string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("GEMINI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.5-flash"
	}

	ttsModel := strings.TrimSpace(os.Getenv("GEMINI_TTS_MODEL"))
	if ttsModel == "" {
		ttsModel = "gemini-2.5-flash-preview-tts"
	}

	ttsVoice := strings.TrimSpace(os.Getenv("GEMINI_TTS_VOICE"))
	if ttsVoice == "" {
		ttsVoice = "Kore"
	}

	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	timeoutSec := utils.GetEnvAsInt("GEMINI_TIMEOUT_SECONDS", 180, log)
	if timeoutSec <= 0 {
		timeoutSec = 180
	}

	return &client{
		log:        log.With("service", "GeminiClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		ttsModel:   ttsModel,
		ttsVoice:   ttsVoice,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *client) Model() string { return c.model }

type geminiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *geminiHTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (e *geminiHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// -------------------- wire types --------------------

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature        float64        `json:"temperature,omitempty"`
	ResponseMimeType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig  `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []map[string]any  `json:"tools,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback"`
}

// -------------------- transport --------------------

// doGenerate issues exactly one generateContent call. Failures surface
// once with the provider body attached; LLM calls are metered, so there
// is no speculative retry here without user consent.
func (c *client) doGenerate(ctx context.Context, model string, body generateRequest, out *generateResponse) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	path := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &geminiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gemini decode error: %w; raw=%s", err, string(raw))
	}
	return nil
}

func extractText(resp generateResponse) string {
	var out strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				out.WriteString(p.Text)
			}
		}
	}
	return out.String()
}

func (c *client) generateText(ctx context.Context, body generateRequest) (string, error) {
	var resp generateResponse
	if err := c.doGenerate(ctx, c.model, body, &resp); err != nil {
		return "", err
	}
	if resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("model blocked prompt: %s", resp.PromptFeedback.BlockReason)
	}
	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text found in response")
	}
	return text, nil
}

// -------------------- API --------------------

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	return c.generateText(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Parts: []part{{Text: user}}}},
		GenerationConfig:  &generationConfig{Temperature: 0.2},
	})
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string, schema map[string]any) (string, error) {
	cfg := &generationConfig{
		Temperature:      0.2,
		ResponseMimeType: "application/json",
	}
	if schema != nil {
		cfg.ResponseSchema = schema
	}
	return c.generateText(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Parts: []part{{Text: user}}}},
		GenerationConfig:  cfg,
	})
}

func (c *client) GenerateGrounded(ctx context.Context, system string, user string) (string, error) {
	// JSON mime type is not combinable with the search tool; the system
	// policy alone constrains the output shape and the normalizer
	// recovers the object span afterwards.
	return c.generateText(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Parts: []part{{Text: user}}}},
		Tools:             []map[string]any{{"google_search": map[string]any{}}},
	})
}

func (c *client) GenerateSpeech(ctx context.Context, text string) (Audio, error) {
	var out Audio
	text = strings.TrimSpace(text)
	if text == "" {
		return out, errors.New("speech text required")
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.ttsVoice},
				},
			},
		},
	}

	var resp generateResponse
	if err := c.doGenerate(ctx, c.ttsModel, req, &resp); err != nil {
		return out, err
	}
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				out.Base64Data = p.InlineData.Data
				out.MimeType = p.InlineData.MimeType
				return out, nil
			}
		}
	}
	return out, errors.New("no audio generated")
}
