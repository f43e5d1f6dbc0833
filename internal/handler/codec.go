package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"huff"
	"huff/internal/service"

	"github.com/gin-gonic/gin"
)

type CodecHandler struct {
	svc     *service.CodecService
	maxBody int64
}

func NewCodecHandler(s *service.CodecService, maxBody int64) *CodecHandler {
	return &CodecHandler{svc: s, maxBody: maxBody}
}

func (h *CodecHandler) Compress(c *gin.Context) {
	src, ok := h.readBody(c)
	if !ok {
		return
	}
	out, err := h.svc.Compress(src)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("X-Huff-Original-Size", strconv.Itoa(len(src)))
	c.Header("X-Huff-Container-Size", strconv.Itoa(len(out)))
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CodecHandler) Decompress(c *gin.Context) {
	data, ok := h.readBody(c)
	if !ok {
		return
	}
	out, err := h.svc.Decompress(data)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("X-Huff-Original-Size", strconv.Itoa(len(out)))
	c.Header("X-Huff-Container-Size", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/octet-stream", out)
}

func (h *CodecHandler) Report(c *gin.Context) {
	src, ok := h.readBody(c)
	if !ok {
		return
	}
	r, err := h.svc.Report(src)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *CodecHandler) Codes(c *gin.Context) {
	src, ok := h.readBody(c)
	if !ok {
		return
	}
	codes, err := h.svc.Codes(src)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

func (h *CodecHandler) readBody(c *gin.Context) ([]byte, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return nil, false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return data, true
}

// statusOf maps codec errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, huff.ErrMalformedTree), errors.Is(err, huff.ErrCorruptPayload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, huff.ErrUnsupportedInput):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusOf(err), gin.H{"error": err.Error()})
}
