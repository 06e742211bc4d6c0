package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/server"
	"github.com/motionmix/montage-backend/pkg/db/aws"
	"github.com/motionmix/montage-backend/pkg/db/postgres"
	"github.com/motionmix/montage-backend/pkg/db/redis"
	"github.com/motionmix/montage-backend/pkg/logger"
)

func main() {
	log.Println("Starting montage API server")
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

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %v", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	s3Client, preSignClient, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %v", err)
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, preSignClient, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("could not start server: %v", err)
	}
}
