package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/thesis-hub/internal/cache"
	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/metrics"
	"github.com/ashwinyue/thesis-hub/internal/repository"
	"github.com/ashwinyue/thesis-hub/internal/service/account"
	"github.com/ashwinyue/thesis-hub/internal/service/file"
	"github.com/ashwinyue/thesis-hub/internal/service/keyword"
	"github.com/ashwinyue/thesis-hub/internal/service/phasetype"
	"github.com/ashwinyue/thesis-hub/internal/service/semester"
	"github.com/ashwinyue/thesis-hub/internal/service/topiccategory"
)

// Services 服务集合
type Services struct {
	Account       *account.Service
	File          *file.Service
	Semester      *semester.Service
	PhaseType     *phasetype.Service
	TopicCategory *topiccategory.Service
	Keyword       *keyword.Extractor

	// 配置
	Config *config.Config
}

// Deps 基础设施依赖，nil 字段使用默认值
type Deps struct {
	Redis      *redis.Client
	Storage    file.Storage
	Logger     *logrus.Logger
	Metrics    *metrics.Metrics
	HTTPClient *http.Client
}

// NewServices 创建所有服务
func NewServices(ctx context.Context, repo *repository.Repositories, cfg *config.Config, deps Deps) (*Services, error) {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// 目录缓存：未启用 Redis 时不缓存
	var c cache.Cache = cache.Nop{}
	if deps.Redis != nil {
		c = cache.NewRedis(deps.Redis)
	}
	store := cache.NewStore(c, cfg.Redis.CacheTTL(), log.WithField("component", "cache"), deps.Metrics)

	// 文件存储
	storage := deps.Storage
	storageType := file.StorageType(cfg.Storage.Type)
	if storage == nil {
		var err error
		storage, storageType, err = file.NewStorage(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}
	if storageType == "" {
		storageType = file.StorageTypeLocal
	}

	keywordOpts := []keyword.Option{
		keyword.WithLogger(log.WithField("component", "keyword")),
		keyword.WithMetrics(deps.Metrics),
	}
	if deps.HTTPClient != nil {
		keywordOpts = append(keywordOpts, keyword.WithHTTPClient(deps.HTTPClient))
	}
	extractor := keyword.NewExtractor(cfg.Gemini, keywordOpts...)
	if !extractor.Enabled() {
		log.Warn("gemini api key not configured, keyword extraction returns empty results")
	}

	return &Services{
		Account:       account.NewService(repo.Account, repo.Role, cfg.JWT),
		File:          file.NewService(repo.File, storage, storageType, log.WithField("component", "file")),
		Semester:      semester.NewService(repo.Semester, store),
		PhaseType:     phasetype.NewService(repo.PhaseType, store),
		TopicCategory: topiccategory.NewService(repo.TopicCategory, store),
		Keyword:       extractor,
		Config:        cfg,
	}, nil
}
