package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"huffman_codec_go/internal/repo"
	"huffman_codec_go/internal/service"
	"huffman_codec_go/pkg/huffman"
)

type CodecHandler struct {
	svc       *service.CodecService
	maxUpload int64
}

func NewCodecHandler(s *service.CodecService, maxUpload int64) *CodecHandler {
	return &CodecHandler{svc: s, maxUpload: maxUpload}
}

type decodeReq struct {
	Codebook string `json:"codebook"`
	Encoded  []byte `json:"encoded" binding:"required"`
}

// Encode takes the raw request body as input. The artifact name comes from ?name=.
func (h *CodecHandler) Encode(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.svc.Encode(c.Request.Context(), c.DefaultQuery("name", "upload"), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *CodecHandler) Decode(c *gin.Context) {
	var req decodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Decode(c.Request.Context(), req.Codebook, req.Encoded)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CodecHandler) GetByID(c *gin.Context) {
	a, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *CodecHandler) Decoded(c *gin.Context) {
	out, err := h.svc.DecodeArtifact(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CodecHandler) List(c *gin.Context) {
	artifacts, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, artifacts)
}

func (h *CodecHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
	case errors.Is(err, huffman.ErrMalformedCodebook),
		errors.Is(err, huffman.ErrBadContainer),
		errors.Is(err, huffman.ErrTruncatedStream),
		errors.Is(err, huffman.ErrInvalidCode),
		errors.Is(err, huffman.ErrChecksumMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
