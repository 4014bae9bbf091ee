package db

import (
  "fmt"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/yungbote/lecturemate-backend/internal/types"
  "github.com/yungbote/lecturemate-backend/internal/utils"
  "github.com/yungbote/lecturemate-backend/internal/logger"
)

type SQLiteService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewSQLiteService(log *logger.Logger) (*SQLiteService, error) {
  serviceLog := log.With("service", "SQLiteService")

  path := utils.GetEnv("SQLITE_PATH", "lecturemate.db", log)

  log.Info("Opening SQLite database...", "path", path)
  db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
  if err != nil {
    log.Error("Failed to open SQLite database", "error", err)
    return nil, fmt.Errorf("Failed to open SQLite database: %w", err)
  }

  return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll() error {
  s.log.Info("Auto migrating sqlite tables...")
  err := s.db.AutoMigrate(
    &types.LectureAnalysis{},
    &types.AICallLog{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *SQLiteService) DB() *gorm.DB {
  return s.db
}
