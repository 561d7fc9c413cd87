package main

import (
	"fmt"
	"os"

	"huffman_codec_go/internal/config"
	"huffman_codec_go/internal/pipeline"
	"huffman_codec_go/pkg/logger"
)

func main() {
	cfg := config.Load()
	logg, err := logger.NewWithWriter("encoder", os.Stderr, cfg.LogLevel)
	if err != nil {
		logg = logger.New("encoder")
	}

	if err := pipeline.CheckArgs("encoder", os.Args, "in_fn cb_fn enc_fn", logg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := pipeline.Options{ChunkSize: cfg.ChunkSize, Log: logg}
	if err := pipeline.EncodeFiles(os.Args[1], os.Args[2], os.Args[3], opts); err != nil {
		os.Exit(1)
	}
}
