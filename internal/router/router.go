package router

import (
	"time"

	"huff/internal/handler"
	"huff/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	CodecHandler *handler.CodecHandler
	Log          logger.Logger
}

func Register(r *gin.Engine, d Dependencies) {
	if d.Log != nil {
		r.Use(requestLogger(d.Log))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", d.CodecHandler.Compress)
		v1.POST("/decompress", d.CodecHandler.Decompress)
		v1.POST("/report", d.CodecHandler.Report)
		v1.POST("/codes", d.CodecHandler.Codes)
	}
}

// requestLogger writes one entry per request once the handler is done.
func requestLogger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		e := l.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"bytes":   c.Writer.Size(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= 500 {
			e.Error("request")
			return
		}
		e.Info("request")
	}
}
