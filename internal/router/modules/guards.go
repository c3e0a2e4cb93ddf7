package modules

import "github.com/gin-gonic/gin"

// Guards are the middleware chains modules attach to their route groups.
type Guards struct {
	// Auth resolves the acting user and rejects anonymous requests.
	Auth gin.HandlerFunc
	// UserLimit throttles authenticated callers.
	UserLimit gin.HandlerFunc
	// IPLimit throttles public reads.
	IPLimit gin.HandlerFunc
}

func (g Guards) authed(rg *gin.RouterGroup) *gin.RouterGroup {
	return rg.Group("/", g.Auth, g.UserLimit)
}
