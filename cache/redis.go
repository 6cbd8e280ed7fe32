// Package cache keeps the JSON summary endpoints in Redis. Every function is
// a no-op when REDIS_ADDR is not configured.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/redis/go-redis/v9"
)

const summaryPrefix = "summary:"

var RDB *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, summary caching is disabled.")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
		DB:       config.Int("REDIS_DB"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		log.Printf("🔥 Could not reach Redis at %s: %v", addr, err)
		RDB = nil
		return
	}
	log.Println("✅ Redis connected successfully")
}

func ttl() time.Duration {
	if d := config.Duration("CACHE_TTL"); d > 0 {
		return d
	}
	return 5 * time.Minute
}

// SummaryKey namespaces a summary cache entry.
func SummaryKey(parts ...string) string {
	key := summaryPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// GetJSON decodes the cached value for key into dst and reports a hit.
func GetJSON(ctx context.Context, key string, dst any) bool {
	if RDB == nil {
		return false
	}
	raw, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Cache read %s failed: %v", key, err)
		}
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func SetJSON(ctx context.Context, key string, v any) {
	if RDB == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := RDB.Set(ctx, key, raw, ttl()).Err(); err != nil {
		log.Printf("⚠️ Cache write %s failed: %v", key, err)
	}
}

// InvalidateSummaries drops every cached summary after a ledger write.
func InvalidateSummaries(ctx context.Context) {
	if RDB == nil {
		return
	}
	iter := RDB.Scan(ctx, 0, summaryPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("⚠️ Cache scan failed: %v", err)
		return
	}
	if len(keys) > 0 {
		if err := RDB.Del(ctx, keys...).Err(); err != nil {
			log.Printf("⚠️ Cache invalidation failed: %v", err)
		}
	}
}
