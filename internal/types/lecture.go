package types

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty labels the model is allowed to emit for an analysis.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Chapter struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type ExamNoteSection struct {
	ChapterTitle string   `json:"chapterTitle"`
	Points       []string `json:"points"`
}

// Formula holds one extracted equation. Equation is LaTeX wrapped in
// $$...$$ after normalization.
type Formula struct {
	Equation string `json:"equation"`
	Context  string `json:"context"`
}

type PracticeQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Type     string   `json:"type,omitempty"`
	Options  []string `json:"options,omitempty"`
}

type ConfidenceQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// MindMapNode is a strictly acyclic tree; practically 2-3 levels deep.
type MindMapNode struct {
	Title    string        `json:"title"`
	Children []MindMapNode `json:"children,omitempty"`
}

// LectureAnalysis is the canonical artifact produced by one generation
// run. Immutable once normalized, except for wholesale replacement when
// the same id is re-processed. The transcript is the single source of
// truth for every follow-up answer.
type LectureAnalysis struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date       time.Time `gorm:"column:date;not null" json:"date"`
	VideoURL   string    `gorm:"column:video_url" json:"videoUrl,omitempty"`
	VideoTitle string    `gorm:"column:video_title;not null" json:"videoTitle"`
	Transcript string    `gorm:"column:transcript;not null" json:"transcript"`
	TopicName  string    `gorm:"column:topic_name" json:"topicName"`
	Difficulty string    `gorm:"column:difficulty" json:"difficulty"`

	Chapters            []Chapter            `gorm:"column:chapters;serializer:json" json:"chapters"`
	ExamNotes           []ExamNoteSection    `gorm:"column:exam_notes;serializer:json" json:"examNotes"`
	Formulas            []Formula            `gorm:"column:formulas;serializer:json" json:"formulas"`
	PracticeQuestions   []PracticeQuestion   `gorm:"column:practice_questions;serializer:json" json:"practiceQuestions"`
	QuickRevision       []string             `gorm:"column:quick_revision;serializer:json" json:"quickRevision"`
	RevisionSheet       string               `gorm:"column:revision_sheet" json:"revisionSheet"`
	MindMap             MindMapNode          `gorm:"column:mind_map;serializer:json" json:"mindMap"`
	ExamQuestions       []string             `gorm:"column:exam_questions;serializer:json" json:"examQuestions"`
	ConfidenceQuestions []ConfidenceQuestion `gorm:"column:confidence_questions;serializer:json" json:"confidenceQuestions"`

	// SavedAt orders the dashboard list (newest first). Preserved on
	// in-place replacement so a re-processed lecture keeps its slot.
	SavedAt time.Time `gorm:"column:saved_at;not null;index" json:"-"`
}

func (LectureAnalysis) TableName() string { return "lecture_analysis" }

// Evaluation is the structured grade returned for a user's own
// explanation of a topic.
type Evaluation struct {
	Score         int      `json:"score"`
	Feedback      string   `json:"feedback"`
	MissingPoints []string `json:"missingPoints"`
	Correction    string   `json:"correction"`
}
