package config

import (
	"fmt"
	"net/url"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// IdempotencyKey returns the Redis key holding the stored response of a
// create request. The client key is escaped so it cannot alter the key layout.
func (r *CacheKeyStruct) IdempotencyKey(uid, method, path, clientKey string) string {
	return fmt.Sprintf("idem:%s:%s:%s:%s", uid, method, path, url.QueryEscape(clientKey))
}

// AdminEventsChannel returns the Redis PubSub channel for admin activity events
func (r *CacheKeyStruct) AdminEventsChannel() string {
	return "admin:events"
}

var CacheKey = NewCacheKeyStruct()
