package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r *gin.Engine, s *Server) {
	r.MaxMultipartMemory = s.cfg.MaxUploadBytes
	api := r.Group("/api", limitBody(s.cfg.MaxUploadBytes))
	{
		api.GET("/health", health)
		api.POST("/photos/resize", s.resizePhoto)
		api.POST("/photos/filter", s.filterPhoto)
		api.POST("/canvas/compose", s.compose)
		api.POST("/canvas/save", s.save)
		api.POST("/canvas/layout", s.layout)
		api.GET("/images/:id", s.getImage)
		api.GET("/images/:id/qr", s.imageQR)
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
