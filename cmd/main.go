package main

import (
  "fmt"
  "os"
  "github.com/yungbote/lecturemate-backend/internal/clients/gemini"
  "github.com/yungbote/lecturemate-backend/internal/clients/youtube"
  "github.com/yungbote/lecturemate-backend/internal/db"
  "github.com/yungbote/lecturemate-backend/internal/handlers"
  "github.com/yungbote/lecturemate-backend/internal/logger"
  "github.com/yungbote/lecturemate-backend/internal/repos"
  "github.com/yungbote/lecturemate-backend/internal/server"
  "github.com/yungbote/lecturemate-backend/internal/services"
  "github.com/yungbote/lecturemate-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // SQLite
  sqliteService, err := db.NewSQLiteService(log)
  if err != nil {
    log.Fatal("SQLite init failed", "error", err)
  }
  if err = sqliteService.AutoMigrateAll(); err != nil {
    log.Fatal("SQLite auto migration failed", "error", err)
  }
  theDB := sqliteService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  lectureRepo := repos.NewLectureRepo(theDB, log)
  callLogRepo := repos.NewAICallLogRepo(theDB, log)

  // Clients
  log.Info("Setting up Clients from main...")
  geminiClient, err := gemini.NewClient(log)
  if err != nil {
    // GEMINI_API_KEY must be set; there is no default credential.
    log.Fatal("Gemini client init failed", "error", err)
  }
  transcriptClient, err := youtube.NewClient(log)
  if err != nil {
    log.Fatal("YouTube transcript client init failed", "error", err)
  }

  // Services
  log.Info("Setting up Services from main...")
  lectureService := services.NewLectureService(log, geminiClient, transcriptClient, lectureRepo, callLogRepo)
  followupService := services.NewFollowupService(log, geminiClient, callLogRepo)

  // Handlers
  log.Info("Setting up Handlers from main...")
  lectureHandler := handlers.NewLectureHandler(log, lectureService)
  followupHandler := handlers.NewFollowupHandler(log, followupService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    LectureHandler:  lectureHandler,
    FollowupHandler: followupHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server stopped", "error", err)
  }
}
