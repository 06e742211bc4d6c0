package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	artifactRepository "github.com/motionmix/montage-backend/internal/artifacts/repository"
	"github.com/motionmix/montage-backend/internal/config"
	queueRepository "github.com/motionmix/montage-backend/internal/jobqueue/repository"
	montageRepository "github.com/motionmix/montage-backend/internal/montages/repository"
	motionRepository "github.com/motionmix/montage-backend/internal/motions/repository"
	trackRepository "github.com/motionmix/montage-backend/internal/tracks/repository"
	videoRepository "github.com/motionmix/montage-backend/internal/videos/repository"
	"github.com/motionmix/montage-backend/internal/worker"
	"github.com/motionmix/montage-backend/pkg/db/aws"
	"github.com/motionmix/montage-backend/pkg/db/postgres"
	clientRedis "github.com/motionmix/montage-backend/pkg/db/redis"
	"github.com/motionmix/montage-backend/pkg/logger"
)

func main() {
	log.Println("Starting montage worker")
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgFile, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %v", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %v", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	s3Client, preSignClient, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %v", err)
	}

	pool := worker.NewPool(
		cfg,
		videoRepository.NewVideoRepo(psqlDB),
		trackRepository.NewTrackRepo(psqlDB),
		motionRepository.NewMotionRepo(psqlDB),
		montageRepository.NewMontageRepo(psqlDB),
		artifactRepository.NewS3Repository(s3Client, preSignClient),
		queueRepository.NewTaskRedisRepo(redisClient),
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof("shutting down workers")
		cancel()
	}()

	pool.Run(ctx)
}
