package services

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/lecturemate-backend/internal/clients/gemini"
	"github.com/yungbote/lecturemate-backend/internal/logger"
	"github.com/yungbote/lecturemate-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.LectureAnalysis{}, &types.AICallLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fakeAI is a substitute generation client; each field scripts one call
// kind. Unset calls fail loudly so tests notice unexpected traffic.
type fakeAI struct {
	textFn     func(system, user string) (string, error)
	jsonFn     func(system, user string, schema map[string]any) (string, error)
	groundedFn func(system, user string) (string, error)
	speechFn   func(text string) (gemini.Audio, error)
	calls      int
}

func (f *fakeAI) GenerateText(_ context.Context, system, user string) (string, error) {
	f.calls++
	if f.textFn == nil {
		return "", fmt.Errorf("unexpected GenerateText call")
	}
	return f.textFn(system, user)
}

func (f *fakeAI) GenerateJSON(_ context.Context, system, user string, schema map[string]any) (string, error) {
	f.calls++
	if f.jsonFn == nil {
		return "", fmt.Errorf("unexpected GenerateJSON call")
	}
	return f.jsonFn(system, user, schema)
}

func (f *fakeAI) GenerateGrounded(_ context.Context, system, user string) (string, error) {
	f.calls++
	if f.groundedFn == nil {
		return "", fmt.Errorf("unexpected GenerateGrounded call")
	}
	return f.groundedFn(system, user)
}

func (f *fakeAI) GenerateSpeech(_ context.Context, text string) (gemini.Audio, error) {
	f.calls++
	if f.speechFn == nil {
		return gemini.Audio{}, fmt.Errorf("unexpected GenerateSpeech call")
	}
	return f.speechFn(text)
}

func (f *fakeAI) Model() string { return "test-model" }

// fakeTranscripts scripts the captioning service.
type fakeTranscripts struct {
	transcript string
	err        error
}

func (f *fakeTranscripts) FetchTranscript(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}
