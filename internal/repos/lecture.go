package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  "github.com/yungbote/lecturemate-backend/internal/types"
)

// MaxSavedLectures bounds the dashboard cache; saving past the cap
// evicts the oldest entries.
const MaxSavedLectures = 20

type LectureRepo interface {
  Save(ctx context.Context, tx *gorm.DB, analysis *types.LectureAnalysis) error
  List(ctx context.Context, tx *gorm.DB) ([]*types.LectureAnalysis, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type lectureRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLectureRepo(db *gorm.DB, baseLog *logger.Logger) LectureRepo {
  repoLog := baseLog.With("repo", "LectureRepo")
  return &lectureRepo{db: db, log: repoLog}
}

// Save replaces an existing analysis in place (keeping its slot in the
// list) or prepends it as the newest entry, then evicts entries beyond
// the cap, oldest first.
func (r *lectureRepo) Save(ctx context.Context, tx *gorm.DB, analysis *types.LectureAnalysis) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).Transaction(func(t *gorm.DB) error {
    var existing types.LectureAnalysis
    err := t.Where("id = ?", analysis.ID).First(&existing).Error
    switch {
    case err == nil:
      analysis.SavedAt = existing.SavedAt
      if err := t.Save(analysis).Error; err != nil {
        return err
      }
    case errors.Is(err, gorm.ErrRecordNotFound):
      analysis.SavedAt = time.Now().UTC()
      if err := t.Create(analysis).Error; err != nil {
        return err
      }
    default:
      return err
    }

    var keep []uuid.UUID
    if err := t.Model(&types.LectureAnalysis{}).
      Order("saved_at DESC").
      Limit(MaxSavedLectures).
      Pluck("id", &keep).Error; err != nil {
      return err
    }
    return t.Where("id NOT IN ?", keep).
      Delete(&types.LectureAnalysis{}).Error
  })
}

// List returns saved analyses newest first. Read failures are swallowed
// and reported as an empty history, since losing history is non-fatal.
func (r *lectureRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.LectureAnalysis, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LectureAnalysis
  if err := transaction.WithContext(ctx).
    Order("saved_at DESC").
    Find(&results).Error; err != nil {
    r.log.Warn("Failed to read saved lectures, treating as empty history", "error", err)
    return []*types.LectureAnalysis{}, nil
  }
  return results, nil
}

// Delete removes the matching entry; a missing id is a no-op.
func (r *lectureRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.LectureAnalysis{}).Error
}
