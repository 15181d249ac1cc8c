package httpapi

import (
	"net/http"

	"github.com/dkoloskov/wellspring/internal/server/models"
	"github.com/dkoloskov/wellspring/internal/server/services"
	"github.com/gin-gonic/gin"
)

type saveDraftRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title" binding:"required,max=100"`
	Tags        *models.TagList `json:"tags"`
	JSONFileURL *string         `json:"jsonFileUrl" binding:"omitempty,url"`
	Description *string         `json:"description" binding:"omitempty,max=500"`
	Duration    *int            `json:"duration" binding:"omitempty,min=1"`
	Level       *models.Level   `json:"level" binding:"omitempty,oneof=beginner intermediate advanced all"`
	Status      *models.Status  `json:"status" binding:"omitempty,oneof=draft published"`
}

type publishRequest struct {
	ID string `json:"id" binding:"required"`
}

func (s *Server) handleListPublic(c *gin.Context) {
	list, err := s.sessions.ListPublic(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "Session not found")
		return
	}
	if list == nil {
		list = []*models.PublishedSession{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

func (s *Server) handleListOwn(c *gin.Context) {
	list, err := s.sessions.ListOwn(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err, "Session not found")
		return
	}
	if list == nil {
		list = []*models.Session{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

func (s *Server) handleGetOwn(c *gin.Context) {
	session, err := s.sessions.GetOwn(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": session})
}

func (s *Server) handleSaveDraft(c *gin.Context) {
	var req saveDraftRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.SaveDraftInput{
		ID:          req.ID,
		Title:       req.Title,
		JSONFileURL: req.JSONFileURL,
		Description: req.Description,
		Duration:    req.Duration,
		Level:       req.Level,
		Status:      req.Status,
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}

	session, err := s.sessions.SaveDraft(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.respondError(c, err, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": session})
}

func (s *Server) handlePublish(c *gin.Context) {
	var req publishRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := s.sessions.Publish(c.Request.Context(), currentUserID(c), req.ID)
	if err != nil {
		s.respondError(c, err, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": session})
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "Session not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
