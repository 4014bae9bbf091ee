package normalization

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/yungbote/lecturemate-backend/internal/pkg/errors"
	"github.com/yungbote/lecturemate-backend/internal/types"
)

const placeholderTitle = "Lecture Analysis"

// modelLecture is the shape the model is asked for. Session metadata
// (id, date, source URL) is deliberately absent: it is bookkeeping set
// by the caller, never trusted from the model.
type modelLecture struct {
	VideoTitle          string                     `json:"videoTitle"`
	Transcript          string                     `json:"transcript"`
	TopicName           string                     `json:"topicName"`
	Difficulty          string                     `json:"difficulty"`
	Chapters            []types.Chapter            `json:"chapters"`
	ExamNotes           []types.ExamNoteSection    `json:"examNotes"`
	Formulas            []types.Formula            `json:"formulas"`
	PracticeQuestions   []types.PracticeQuestion   `json:"practiceQuestions"`
	QuickRevision       []string                   `json:"quickRevision"`
	RevisionSheet       string                     `json:"revisionSheet"`
	MindMap             *types.MindMapNode         `json:"mindMap"`
	ExamQuestions       []string                   `json:"examQuestions"`
	ConfidenceQuestions []types.ConfidenceQuestion `json:"confidenceQuestions"`
}

// NormalizeLecture turns raw model output into a validated
// LectureAnalysis: cleanup, parse, default fill, then metadata
// injection. sourceURL may be empty (pasted text); transcript, when
// non-empty, is the exact text that was sent to the model and overrides
// whatever the model echoed back.
func NormalizeLecture(raw, sourceURL, transcript string) (*types.LectureAnalysis, error) {
	clean, err := CleanModelJSON(raw)
	if err != nil {
		return nil, err
	}

	var m modelLecture
	if err := json.Unmarshal([]byte(clean), &m); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", pkgerrors.ErrMalformedResponse, err, Truncate(clean, diagnosticLimit))
	}

	out := &types.LectureAnalysis{
		VideoTitle:          strings.TrimSpace(m.VideoTitle),
		Transcript:          m.Transcript,
		TopicName:           strings.TrimSpace(m.TopicName),
		Difficulty:          normalizeDifficulty(m.Difficulty),
		Chapters:            m.Chapters,
		ExamNotes:           m.ExamNotes,
		Formulas:            m.Formulas,
		PracticeQuestions:   m.PracticeQuestions,
		QuickRevision:       m.QuickRevision,
		RevisionSheet:       m.RevisionSheet,
		ExamQuestions:       m.ExamQuestions,
		ConfidenceQuestions: m.ConfidenceQuestions,
	}
	if m.MindMap != nil {
		out.MindMap = *m.MindMap
	}

	fillDefaults(out)

	// Injected metadata: session bookkeeping, always set here.
	out.ID = uuid.New()
	out.Date = time.Now().UTC()
	out.VideoURL = sourceURL
	if strings.TrimSpace(transcript) != "" {
		out.Transcript = transcript
	}

	return out, nil
}

// fillDefaults guarantees every field of the artifact is present even
// when the model omitted it, so nothing downstream has to null-check.
func fillDefaults(a *types.LectureAnalysis) {
	if a.VideoTitle == "" {
		a.VideoTitle = placeholderTitle
	}
	if a.TopicName == "" {
		a.TopicName = a.VideoTitle
	}
	if a.Chapters == nil {
		a.Chapters = []types.Chapter{}
	}
	if a.ExamNotes == nil {
		a.ExamNotes = []types.ExamNoteSection{}
	}
	for i := range a.ExamNotes {
		if a.ExamNotes[i].Points == nil {
			a.ExamNotes[i].Points = []string{}
		}
	}
	if a.Formulas == nil {
		a.Formulas = []types.Formula{}
	}
	for i := range a.Formulas {
		a.Formulas[i].Equation = WrapFormulaLaTeX(a.Formulas[i].Equation)
	}
	if a.PracticeQuestions == nil {
		a.PracticeQuestions = []types.PracticeQuestion{}
	}
	if a.QuickRevision == nil {
		a.QuickRevision = []string{}
	}
	if a.ExamQuestions == nil {
		a.ExamQuestions = []string{}
	}
	if a.ConfidenceQuestions == nil {
		a.ConfidenceQuestions = []types.ConfidenceQuestion{}
	}
	for i := range a.ConfidenceQuestions {
		if a.ConfidenceQuestions[i].Options == nil {
			a.ConfidenceQuestions[i].Options = []string{}
		}
	}
	if a.MindMap.Title == "" {
		a.MindMap.Title = a.TopicName
	}
}

// normalizeDifficulty coerces the label onto the fixed enum; anything
// unrecognized becomes Medium rather than failing the whole analysis.
func normalizeDifficulty(raw string) string {
	switch ParseInputString(raw) {
	case "easy":
		return types.DifficultyEasy
	case "hard":
		return types.DifficultyHard
	default:
		return types.DifficultyMedium
	}
}

// WrapFormulaLaTeX enforces the $$...$$ delimiter contract the prompt
// only instructs: bare equations get wrapped, stray single-$ delimiters
// get replaced.
func WrapFormulaLaTeX(equation string) string {
	eq := strings.TrimSpace(equation)
	if eq == "" {
		return ""
	}
	if strings.HasPrefix(eq, "$$") && strings.HasSuffix(eq, "$$") && len(eq) > 4 {
		return eq
	}
	eq = strings.Trim(eq, "$")
	eq = strings.TrimSpace(eq)
	if eq == "" {
		return ""
	}
	return "$$" + eq + "$$"
}
