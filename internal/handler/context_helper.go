package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/middleware"
	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/response"
)

// IdempotencyHeader carries the form instance id of a change-request submission.
const IdempotencyHeader = "Idempotency-Key"

// actorFromContext resolves the caller or writes a 401 and returns false.
func actorFromContext(c *gin.Context) (models.Actor, bool) {
	claims := middleware.Claims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Actor{}, false
	}
	actor := models.ActorFromClaims(claims)
	actor.IP = c.ClientIP()
	actor.Agent = c.GetHeader("User-Agent")
	return actor, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

// respondCached writes data with the cache_hit flag and processing time.
func respondCached(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, data, nil, meta)
}
