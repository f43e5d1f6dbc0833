package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"huff/internal/handler"
	"huff/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newEngine(t *testing.T, maxBody int64) (*gin.Engine, *logtest.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	r := gin.New()
	Register(r, Dependencies{
		CodecHandler: handler.NewCodecHandler(service.NewCodecService(log), maxBody),
		Log:          log,
	})
	return r, hook
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newEngine(t, 1<<20)
	w := do(r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCompressDecompress(t *testing.T) {
	r, hook := newEngine(t, 1<<20)
	src := []byte("abracadabra, abracadabra")

	w := do(r, http.MethodPost, "/api/v1/compress", src)
	if w.Code != http.StatusOK {
		t.Fatalf("compress status = %d body=%s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Fatalf("content type = %q", ct)
	}
	if got := w.Header().Get("X-Huff-Original-Size"); got != strconv.Itoa(len(src)) {
		t.Fatalf("X-Huff-Original-Size = %q", got)
	}
	container := w.Body.Bytes()
	if got := w.Header().Get("X-Huff-Container-Size"); got != strconv.Itoa(len(container)) {
		t.Fatalf("X-Huff-Container-Size = %q, body has %d bytes", got, len(container))
	}

	w = do(r, http.MethodPost, "/api/v1/decompress", container)
	if w.Code != http.StatusOK {
		t.Fatalf("decompress status = %d body=%s", w.Code, w.Body)
	}
	if !bytes.Equal(w.Body.Bytes(), src) {
		t.Fatalf("round trip = %q, want %q", w.Body.Bytes(), src)
	}

	var requests int
	for _, e := range hook.AllEntries() {
		if e.Message == "request" {
			requests++
		}
	}
	if requests != 2 {
		t.Fatalf("logged %d requests, want 2", requests)
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	r, _ := newEngine(t, 1<<20)

	w := do(r, http.MethodPost, "/api/v1/decompress", []byte("not a container"))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Fatalf("error body = %s (%v)", w.Body, err)
	}
}

func TestBodyTooLarge(t *testing.T) {
	r, _ := newEngine(t, 16)
	w := do(r, http.MethodPost, "/api/v1/compress", bytes.Repeat([]byte("x"), 64))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
}

func TestReport(t *testing.T) {
	r, _ := newEngine(t, 1<<20)
	src := bytes.Repeat([]byte("the quick brown fox "), 50)

	w := do(r, http.MethodPost, "/api/v1/report", src)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body)
	}
	var rep struct {
		OriginalSize  int `json:"original_size"`
		ContainerSize int `json:"container_size"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.OriginalSize != len(src) || rep.ContainerSize == 0 || rep.ContainerSize >= len(src) {
		t.Fatalf("report = %+v", rep)
	}
}

func TestCodes(t *testing.T) {
	r, _ := newEngine(t, 1<<20)

	w := do(r, http.MethodPost, "/api/v1/codes", []byte("aaaaaaaaab"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body)
	}
	var res service.Codes
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Symbols) != 2 {
		t.Fatalf("symbols = %+v", res.Symbols)
	}
	// 'a' sorts before 'b'; the rarer 'b' is merged first and goes left.
	if a := res.Symbols[0]; a.Symbol != 'a' || a.Count != 9 || a.Code != "1" {
		t.Fatalf("a = %+v", a)
	}
	if b := res.Symbols[1]; b.Symbol != 'b' || b.Count != 1 || b.Code != "0" {
		t.Fatalf("b = %+v", b)
	}
	if res.Tree == "" {
		t.Fatalf("empty tree dump")
	}
}

func TestCodes_Empty(t *testing.T) {
	r, _ := newEngine(t, 1<<20)
	w := do(r, http.MethodPost, "/api/v1/codes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res service.Codes
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Symbols) != 0 || res.Tree != "" {
		t.Fatalf("res = %+v", res)
	}
}
