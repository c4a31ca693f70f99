// Package cache 目录列表缓存
// 缓存只是加速手段，读写失败都回源数据库，不影响业务结果
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/thesis-hub/internal/metrics"
)

// Cache 键值缓存，值以 JSON 编码
type Cache interface {
	// Get 命中时把值解码到 dest 并返回 true
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// DeletePrefix 删除所有以 prefix 开头的键
	DeletePrefix(ctx context.Context, prefix string) error
}

// Nop 不缓存
type Nop struct{}

// Get 总是未命中
func (Nop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

// Set 忽略
func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

// DeletePrefix 忽略
func (Nop) DeletePrefix(context.Context, string) error { return nil }

// Store 带日志和指标的缓存入口
type Store struct {
	cache   Cache
	ttl     time.Duration
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

// NewStore 创建缓存入口，c 为 nil 时等同于 Nop
func NewStore(c Cache, ttl time.Duration, log logrus.FieldLogger, m *metrics.Metrics) *Store {
	if c == nil {
		c = Nop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{cache: c, ttl: ttl, log: log, metrics: m}
}

// Fetch 先读缓存，未命中时调用 load 并回写
// load 的错误原样返回，缓存错误只记日志
func Fetch[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	if s == nil {
		return load(ctx)
	}

	var cached T
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache get failed")
	}
	if hit {
		s.metrics.ObserveCache(true)
		return cached, nil
	}
	if _, nop := s.cache.(Nop); !nop {
		s.metrics.ObserveCache(false)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
	return value, nil
}

// Invalidate 删除前缀下的缓存
func (s *Store) Invalidate(ctx context.Context, prefix string) {
	if s == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
		s.log.WithError(err).WithField("prefix", prefix).Warn("cache invalidate failed")
	}
}

// Memory 进程内缓存，不处理过期，主要用于测试
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory 创建进程内缓存
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Get 读取
func (m *Memory) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	data, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, decode(data, dest)
}

// Set 写入
func (m *Memory) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = data
	m.mu.Unlock()
	return nil
}

// DeletePrefix 按前缀删除
func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

// Len 当前键数量
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
