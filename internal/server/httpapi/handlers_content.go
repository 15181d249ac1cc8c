package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleUploadURL mints a presigned PUT URL for authored content JSON. The
// route is only registered when an object-storage backend is configured.
func (s *Server) handleUploadURL(c *gin.Context) {
	key, url, err := s.content.GetPresignedPutURL(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"key": key, "uploadUrl": url},
	})
}
