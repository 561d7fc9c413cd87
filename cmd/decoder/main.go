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
	logg, err := logger.NewWithWriter("decoder", os.Stderr, cfg.LogLevel)
	if err != nil {
		logg = logger.New("decoder")
	}

	if err := pipeline.CheckArgs("decoder", os.Args, "enc_fn cb_fn out_fn", logg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := pipeline.DecodeFiles(os.Args[1], os.Args[2], os.Args[3], pipeline.Options{Log: logg}); err != nil {
		os.Exit(1)
	}
}
