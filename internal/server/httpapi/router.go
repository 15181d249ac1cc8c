package httpapi

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNamesOnce sync.Once

// registerValidatorTagNames makes binding violations report the json field
// name instead of the Go struct field name.
func registerValidatorTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	registerValidatorTagNames()

	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorEnvelope("Server error"))
	}))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.corsOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	api.GET("/ping", s.handlePing)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.GET("/me", s.requireAuth(), s.handleMe)

	api.GET("/sessions", s.handleListPublic)

	my := api.Group("/my-sessions")
	my.Use(s.requireAuth())
	my.GET("", s.handleListOwn)
	my.GET("/:id", s.handleGetOwn)
	my.POST("/save-draft", s.handleSaveDraft)
	my.POST("/publish", s.handlePublish)
	my.DELETE("/:id", s.handleDelete)
	if s.content != nil && s.content.Enabled() {
		my.POST("/upload-url", s.handleUploadURL)
	}

	return r
}

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "pong"})
}
