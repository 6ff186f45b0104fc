package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blog-web-server/config"
	"blog-web-server/internal/model"
	"blog-web-server/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetPost(ctx context.Context, post *model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return util.LogError("ошибка сериализации поста", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(post.Slug), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	val, err := r.client.Client.Get(ctx, r.key(slug)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения поста из Redis", err)
	}

	var post model.Post
	if err := json.Unmarshal([]byte(val), &post); err != nil {
		return nil, util.LogError("ошибка десериализации поста из кэша", err)
	}
	return &post, nil
}

func (r *CacheRepository) DeletePost(ctx context.Context, slug string) error {
	if err := r.client.Client.Del(ctx, r.key(slug)).Err(); err != nil {
		return util.LogError("ошибка удаления поста из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(slug string) string {
	return fmt.Sprintf("post:slug:%s", slug)
}
