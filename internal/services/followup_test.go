package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/lecturemate-backend/internal/clients/gemini"
	pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
	"github.com/yungbote/lecturemate-backend/internal/prompts"
	"github.com/yungbote/lecturemate-backend/internal/repos"
	"github.com/yungbote/lecturemate-backend/internal/types"
)

func newFollowupService(t *testing.T, ai *fakeAI) FollowupService {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	return NewFollowupService(log, ai, repos.NewAICallLogRepo(db, log))
}

func TestAskDoubtOutOfScopeFallback(t *testing.T) {
	// A transcript that never mentions mitochondria: the model is
	// scripted to follow its instruction and return the fixed sentence.
	ai := &fakeAI{
		textFn: func(system, user string) (string, error) {
			if !strings.Contains(system, prompts.DoubtFallback) {
				t.Errorf("system policy does not pin the fallback sentence")
			}
			if !strings.Contains(user, "mitochondria") {
				t.Errorf("question missing from user content: %q", user)
			}
			return prompts.DoubtFallback, nil
		},
	}
	svc := newFollowupService(t, ai)

	answer, err := svc.AskDoubt(context.Background(), "The cat sat on the mat.", "What are mitochondria?", nil)
	if err != nil {
		t.Fatalf("AskDoubt: %v", err)
	}
	if answer != "This topic was not covered in the lecture." {
		t.Fatalf("answer=%q, want the exact fallback sentence", answer)
	}
}

func TestAskDoubtValidation(t *testing.T) {
	ai := &fakeAI{}
	svc := newFollowupService(t, ai)

	if _, err := svc.AskDoubt(context.Background(), "", "question", nil); !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("missing transcript error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.AskDoubt(context.Background(), "transcript", " ", nil); !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("missing question error = %v, want ErrInvalidInput", err)
	}
	if ai.calls != 0 {
		t.Fatalf("invalid input reached the provider: %d calls", ai.calls)
	}
}

func TestAskDoubtCarriesHistory(t *testing.T) {
	var prompt string
	ai := &fakeAI{
		textFn: func(system, user string) (string, error) {
			prompt = user
			return "Osmosis moves water across the membrane.", nil
		},
	}
	svc := newFollowupService(t, ai)

	history := []types.ChatMessage{
		{Role: "user", Content: "What is osmosis?"},
		{Role: "assistant", Content: "Water crossing a membrane."},
	}
	if _, err := svc.AskDoubt(context.Background(), "Osmosis is covered here.", "And in which direction?", history); err != nil {
		t.Fatalf("AskDoubt: %v", err)
	}

	for _, want := range []string{"CONVERSATION SO FAR:", "USER: What is osmosis?", "ASSISTANT: Water crossing a membrane."} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	// Prior turns come before the new question.
	if strings.Index(prompt, "CONVERSATION SO FAR:") > strings.Index(prompt, "USER QUESTION:") {
		t.Fatalf("history placed after the question:\n%s", prompt)
	}
}

func TestExplainLikeIm5(t *testing.T) {
	ai := &fakeAI{
		textFn: func(system, user string) (string, error) {
			if !strings.Contains(user, "SELECTED TEXT TO EXPLAIN") {
				t.Errorf("user content missing selection block: %q", user)
			}
			return "It is like stacking blocks!", nil
		},
	}
	svc := newFollowupService(t, ai)

	got, err := svc.ExplainLikeIm5(context.Background(), "matrix multiplication", "full transcript here")
	if err != nil {
		t.Fatalf("ExplainLikeIm5: %v", err)
	}
	if got != "It is like stacking blocks!" {
		t.Fatalf("explanation=%q", got)
	}
}

func TestEvaluateExplanation(t *testing.T) {
	ai := &fakeAI{
		jsonFn: func(system, user string, schema map[string]any) (string, error) {
			if schema == nil {
				t.Error("grading call must carry the formal schema")
			}
			// Fenced output despite JSON mode still parses.
			return "```json\n{\"score\":72,\"feedback\":\"decent\",\"missingPoints\":[\"momentum\"],\"correction\":\"mention momentum\"}\n```", nil
		},
	}
	svc := newFollowupService(t, ai)

	eval, err := svc.EvaluateExplanation(context.Background(), "Newton's laws", "things move", "transcript")
	if err != nil {
		t.Fatalf("EvaluateExplanation: %v", err)
	}
	if eval.Score != 72 || eval.Feedback != "decent" || eval.Correction != "mention momentum" {
		t.Fatalf("eval=%+v", eval)
	}
	if len(eval.MissingPoints) != 1 || eval.MissingPoints[0] != "momentum" {
		t.Fatalf("missingPoints=%v", eval.MissingPoints)
	}
}

func TestEvaluateExplanationMalformed(t *testing.T) {
	ai := &fakeAI{
		jsonFn: func(_, _ string, _ map[string]any) (string, error) {
			return "no json here", nil
		},
	}
	svc := newFollowupService(t, ai)

	if _, err := svc.EvaluateExplanation(context.Background(), "topic", "explanation", "transcript"); !errors.Is(err, pkgerrors.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestGenerateSpeech(t *testing.T) {
	ai := &fakeAI{
		speechFn: func(text string) (gemini.Audio, error) {
			return gemini.Audio{Base64Data: "UklGRg==", MimeType: "audio/pcm"}, nil
		},
	}
	svc := newFollowupService(t, ai)

	audio, err := svc.GenerateSpeech(context.Background(), "read this aloud")
	if err != nil {
		t.Fatalf("GenerateSpeech: %v", err)
	}
	if audio.Base64Data != "UklGRg==" || audio.MimeType != "audio/pcm" {
		t.Fatalf("audio=%+v", audio)
	}

	if _, err := svc.GenerateSpeech(context.Background(), ""); !errors.Is(err, pkgerrors.ErrInvalidInput) {
		t.Fatalf("empty text error = %v, want ErrInvalidInput", err)
	}
}

func TestGenerateSpeechProviderFailure(t *testing.T) {
	ai := &fakeAI{
		speechFn: func(string) (gemini.Audio, error) {
			return gemini.Audio{}, errors.New("no audio generated")
		},
	}
	svc := newFollowupService(t, ai)

	if _, err := svc.GenerateSpeech(context.Background(), "text"); !errors.Is(err, pkgerrors.ErrProvider) {
		t.Fatalf("error = %v, want ErrProvider", err)
	}
}
