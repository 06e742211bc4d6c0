package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	artifactRepository "github.com/motionmix/montage-backend/internal/artifacts/repository"
	avatarHttp "github.com/motionmix/montage-backend/internal/avatars/delivery/http"
	avatarRepository "github.com/motionmix/montage-backend/internal/avatars/repository"
	avatarUsecase "github.com/motionmix/montage-backend/internal/avatars/usecase"
	fileHttp "github.com/motionmix/montage-backend/internal/files/delivery/http"
	fileUsecase "github.com/motionmix/montage-backend/internal/files/usecase"
	queueRepository "github.com/motionmix/montage-backend/internal/jobqueue/repository"
	"github.com/motionmix/montage-backend/internal/middleware"
	montageHttp "github.com/motionmix/montage-backend/internal/montages/delivery/http"
	montageRepository "github.com/motionmix/montage-backend/internal/montages/repository"
	montageUsecase "github.com/motionmix/montage-backend/internal/montages/usecase"
	motionHttp "github.com/motionmix/montage-backend/internal/motions/delivery/http"
	"github.com/motionmix/montage-backend/internal/motions/external"
	motionRepository "github.com/motionmix/montage-backend/internal/motions/repository"
	motionUsecase "github.com/motionmix/montage-backend/internal/motions/usecase"
	trackHttp "github.com/motionmix/montage-backend/internal/tracks/delivery/http"
	trackRepository "github.com/motionmix/montage-backend/internal/tracks/repository"
	trackUsecase "github.com/motionmix/montage-backend/internal/tracks/usecase"
	videoHttp "github.com/motionmix/montage-backend/internal/videos/delivery/http"
	videoRepository "github.com/motionmix/montage-backend/internal/videos/repository"
	videoUsecase "github.com/motionmix/montage-backend/internal/videos/usecase"
	"github.com/motionmix/montage-backend/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	videoRepo := videoRepository.NewVideoRepo(s.db)
	trackRepo := trackRepository.NewTrackRepo(s.db)
	avatarRepo := avatarRepository.NewAvatarRepo(s.db)
	motionRepo := motionRepository.NewMotionRepo(s.db)
	montageRepo := montageRepository.NewMontageRepo(s.db)
	storeRepo := artifactRepository.NewS3Repository(s.s3Client, s.preSignClient)
	queueRepo := queueRepository.NewTaskRedisRepo(s.redisClient)
	rateLimiter := queueRepository.NewRedisRateLimiter(s.redisClient)
	genClient := external.NewClient(&s.cfg.Motion)

	videoUC := videoUsecase.NewVideoUseCase(s.cfg, videoRepo, queueRepo, s.logger)
	trackUC := trackUsecase.NewTrackUseCase(s.cfg, trackRepo, storeRepo, queueRepo, s.logger)
	avatarUC := avatarUsecase.NewAvatarUseCase(s.cfg, avatarRepo, storeRepo, s.logger)
	motionUC := motionUsecase.NewMotionUseCase(s.cfg, motionRepo, avatarRepo, videoRepo, storeRepo, genClient, s.logger)
	montageUC := montageUsecase.NewMontageUseCase(s.cfg, montageRepo, videoRepo, motionRepo, trackRepo, storeRepo, queueRepo, s.logger)
	fileUC := fileUsecase.NewFileUseCase(s.cfg, storeRepo, s.logger)

	videoHandlers := videoHttp.NewVideoHandler(videoUC)
	trackHandlers := trackHttp.NewTrackHandler(trackUC)
	avatarHandlers := avatarHttp.NewAvatarHandler(avatarUC)
	motionHandlers := motionHttp.NewMotionHandler(motionUC, s.logger)
	montageHandlers := montageHttp.NewMontageHandler(montageUC)
	fileHandlers := fileHttp.NewFileHandler(fileUC)

	mw := middleware.NewMiddlewareManager(s.cfg, rateLimiter, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/videos")
	trackGroup := v1.Group("/tracks")
	avatarGroup := v1.Group("/avatars")
	motionGroup := v1.Group("/motions")
	montageGroup := v1.Group("/montages")
	fileGroup := v1.Group("/files")
	callbackGroup := v1.Group("/callbacks")

	videoHttp.MapVideoRoutes(videoGroup, videoHandlers)
	trackHttp.MapTrackRoutes(trackGroup, trackHandlers, mw)
	avatarHttp.MapAvatarRoutes(avatarGroup, avatarHandlers)
	motionHttp.MapMotionRoutes(motionGroup, motionHandlers)
	motionHttp.MapCallbackRoutes(callbackGroup, motionHandlers)
	montageHttp.MapMontageRoutes(montageGroup, montageHandlers)
	fileHttp.MapFileRoutes(fileGroup, fileHandlers)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
