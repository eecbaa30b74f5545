package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/pkg/middleware/requestid"
)

const (
	responseMetaKey = "response_meta"
	metaStartKey    = "response_meta_start"
)

// WithResponseMeta opens a per-request meta bag that handlers fill before
// writing the envelope. The request id is seeded so clients can quote it
// when reporting a failed submission.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := map[string]interface{}{}
		if id := requestid.Value(c); id != "" {
			meta["request_id"] = id
		}
		c.Set(metaStartKey, time.Now())
		c.Set(responseMetaKey, meta)
		c.Next()
	}
}

// SetCacheHit flags whether a read was served from the projection cache.
// Routes mounted without WithResponseMeta get a bag on first use.
func SetCacheHit(c *gin.Context, hit bool) {
	if c == nil {
		return
	}
	meta := ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
		c.Set(responseMetaKey, meta)
	}
	meta["cache_hit"] = hit
}

// ExtractMeta returns the meta bag with processing_time_ms stamped, or nil
// when WithResponseMeta is not installed on the route.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	raw, ok := c.Get(responseMetaKey)
	if !ok {
		return nil
	}
	meta, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(metaStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	return meta
}
