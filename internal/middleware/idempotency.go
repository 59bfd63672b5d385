package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/response"
)

const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
	idempotencyPending   = "pending"
)

// storedResponse is the cached form of a completed request.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Idempotency makes create requests safe to retry. The first request carrying
// an Idempotency-Key reserves it; a 2xx response is stored for ttl and replayed
// to later requests with the same key, other outcomes release the key. A
// duplicate that arrives while the first is still running gets 409.
// Requests without the header, or with rdb nil, pass straight through.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || clientKey == "" {
			c.Next()
			return
		}
		if len(clientKey) > maxIdempotencyKeyLen {
			c.Abort()
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				HeaderIdempotencyKey: "must be at most 255 characters",
			})
			return
		}

		ctx := c.Request.Context()
		log := zerolog.Ctx(ctx)

		uid := ""
		if identity := GetIdentity(c); identity != nil {
			uid = identity.UID
		}
		key := config.CacheKey.IdempotencyKey(uid, c.Request.Method, c.Request.URL.Path, clientKey)

		reserved, err := rdb.SetNX(ctx, key, idempotencyPending, ttl).Result()
		if err != nil {
			log.Warn().Err(err).Msg("Idempotency store unavailable, processing without key")
			c.Next()
			return
		}

		if !reserved {
			replayStored(c, rdb, key)
			return
		}

		// The request context may be done by the time the handler returns.
		storeCtx := context.WithoutCancel(ctx)
		completed := false
		defer func() {
			if !completed {
				rdb.Del(storeCtx, key)
			}
		}()

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		status := cw.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.body.Bytes(),
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode idempotent response")
			return
		}
		if err := rdb.Set(storeCtx, key, payload, ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("Failed to store idempotent response")
			return
		}
		completed = true
	}
}

func replayStored(c *gin.Context, rdb *redis.Client, key string) {
	raw, err := rdb.Get(c.Request.Context(), key).Bytes()
	if errors.Is(err, redis.Nil) || (err == nil && string(raw) == idempotencyPending) {
		response.AbortFail(c, http.StatusConflict, response.ErrIdempotencyInFlight)
		return
	}
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to read idempotent response")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var stored storedResponse
	if err := json.Unmarshal(raw, &stored); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Corrupt idempotent response")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header(HeaderIdempotentReplayed, "true")
	c.Data(stored.Status, stored.ContentType, stored.Body)
	c.Abort()
}

// captureWriter copies the response body as it is written.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
