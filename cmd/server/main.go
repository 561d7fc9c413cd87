package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"huffman_codec_go/internal/config"
	"huffman_codec_go/internal/handler"
	"huffman_codec_go/internal/repo"
	"huffman_codec_go/internal/router"
	"huffman_codec_go/internal/service"
	"huffman_codec_go/pkg/logger"
)

func main() {
	cfg := config.Load()
	logg, err := logger.NewWithWriter("server", log.Writer(), cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	artifactRepo := repo.NewArtifactRepoInMemory()
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		pool, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repo.Migrate(ctx, pool); err != nil {
			log.Fatal(err)
		}
		artifactRepo = repo.NewArtifactRepoPostgres(pool)
	}

	codecSvc, err := service.NewCodecService(artifactRepo, logg, cfg.CodebookCache, cfg.ChunkSize)
	if err != nil {
		log.Fatal(err)
	}
	codecH := handler.NewCodecHandler(codecSvc, cfg.MaxUpload)

	r := gin.Default()
	router.Register(r, router.Dependencies{
		CodecHandler: codecH,
	})

	addr := ":" + cfg.Port
	log.Printf("starting server at %s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
