package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yungbote/lecturemate-backend/internal/logger"
	pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
)

// videoIDPattern covers the known YouTube URL shapes: watch?v=,
// youtu.be/, embed/, v/, u/<ch>/ and &v=.
var videoIDPattern = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|embed/|watch\?v=|[?&]v=)([^#&?/]+)`)

// ExtractVideoID pulls the 11-character video identifier out of a
// YouTube URL. The same id comes back regardless of URL shape.
func ExtractVideoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: url required", pkgerrors.ErrInvalidInput)
	}
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil || len(m[1]) != 11 {
		return "", fmt.Errorf("%w: not a recognizable YouTube URL", pkgerrors.ErrInvalidInput)
	}
	return m[1], nil
}

// Client fetches caption tracks for a video and flattens them into one
// transcript string.
type Client interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	lang       string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	baseURL := strings.TrimSpace(os.Getenv("YOUTUBE_TIMEDTEXT_BASE"))
	if baseURL == "" {
		baseURL = "https://www.youtube.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	lang := strings.TrimSpace(os.Getenv("YOUTUBE_TRANSCRIPT_LANG"))
	if lang == "" {
		lang = "en"
	}

	return &client{
		log:        log.With("service", "YouTubeTranscriptClient"),
		baseURL:    baseURL,
		lang:       lang,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// timedtext json3 payload: a flat event list whose segments carry the
// caption text.
type timedTextResponse struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// FetchTranscript tries the manually-authored caption track first, then
// the auto-generated one. An empty result from both is a typed refusal,
// not a generic failure: without a transcript we do not fabricate one.
func (c *client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", fmt.Errorf("%w: video id required", pkgerrors.ErrInvalidInput)
	}

	for _, kind := range []string{"", "asr"} {
		text, err := c.fetchTrack(ctx, videoID, kind)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
	}

	c.log.Warn("No caption track found", "video_id", videoID)
	return "", fmt.Errorf("%w: video %s has no caption track", pkgerrors.ErrNoTranscript, videoID)
}

func (c *client) fetchTrack(ctx context.Context, videoID, kind string) (string, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", c.lang)
	q.Set("fmt", "json3")
	if kind != "" {
		q.Set("kind", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/timedtext?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: timedtext http %d: %s", pkgerrors.ErrProvider, resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrProvider, err)
	}
	// The endpoint answers 200 with an empty body when the track does
	// not exist.
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", nil
	}

	var tt timedTextResponse
	if err := json.Unmarshal(raw, &tt); err != nil {
		return "", fmt.Errorf("%w: timedtext decode: %v", pkgerrors.ErrProvider, err)
	}
	return flattenEvents(tt), nil
}

// flattenEvents concatenates all fragment texts in order with
// single-space separation.
func flattenEvents(tt timedTextResponse) string {
	var parts []string
	for _, ev := range tt.Events {
		for _, seg := range ev.Segs {
			s := strings.TrimSpace(strings.ReplaceAll(seg.UTF8, "\n", " "))
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}
