package router

import (
	"huffman_codec_go/internal/handler"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	CodecHandler *handler.CodecHandler
}

func Register(r *gin.Engine, d Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/encode", d.CodecHandler.Encode)
		v1.POST("/decode", d.CodecHandler.Decode)

		artifacts := v1.Group("/artifacts")
		{
			artifacts.GET("", d.CodecHandler.List)
			artifacts.GET("/:id", d.CodecHandler.GetByID)
			artifacts.GET("/:id/decoded", d.CodecHandler.Decoded)
		}
	}
}
