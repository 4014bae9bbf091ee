package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/lecturemate-backend/internal/handlers"
)

type RouterConfig struct {
  LectureHandler  *handlers.LectureHandler
  FollowupHandler *handlers.FollowupHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
    AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Analysis pipeline
    api.POST("/process-url", cfg.LectureHandler.ProcessURL)
    api.POST("/process-text", cfg.LectureHandler.ProcessText)
    // Dashboard store
    api.GET("/lectures", cfg.LectureHandler.ListLectures)
    api.DELETE("/lectures/:id", cfg.LectureHandler.DeleteLecture)
    // Follow-up modules
    api.POST("/ask-doubt", cfg.FollowupHandler.AskDoubt)
    api.POST("/explain-like-im-5", cfg.FollowupHandler.ExplainLikeIm5)
    api.POST("/generate-speech", cfg.FollowupHandler.GenerateSpeech)
    api.POST("/evaluate-explanation", cfg.FollowupHandler.EvaluateExplanation)
  }

  return router
}
