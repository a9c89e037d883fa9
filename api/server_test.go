package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/moodscope"
	"github.com/tsawler/moodscope/internal/config"
	"github.com/tsawler/moodscope/internal/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         8000,
			CORSOrigins:  []string{"*"},
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			MaxUploadMB:  1,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func testServer(t *testing.T, opts ...moodscope.Option) (*Server, *metrics.Collector) {
	t.Helper()
	analyzer, err := moodscope.NewAnalyzer(opts...)
	require.NoError(t, err)
	collector := metrics.NewCollector("moodscope")
	return NewServer(testConfig(), analyzer, nil, collector, "test"), collector
}

type formPart struct {
	name, filename string
	content        []byte
}

func multipartRequest(t *testing.T, parts ...formPart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		if p.filename != "" {
			fw, err := mw.CreateFormFile(p.name, p.filename)
			require.NoError(t, err)
			_, err = fw.Write(p.content)
			require.NoError(t, err)
			continue
		}
		require.NoError(t, mw.WriteField(p.name, string(p.content)))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-entry", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestAnalyzeEntryMultipart(t *testing.T) {
	s, collector := testServer(t)

	rec := serve(s, multipartRequest(t,
		formPart{name: "text", content: []byte("I am so happy and grateful today!")},
		formPart{name: "image", filename: "photo.png", content: []byte{0x89, 'P', 'N', 'G'}},
	))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{
		"sentiment_score", "sentiment_label", "magnitude", "confidence", "probabilities",
		"primary_emotion", "secondary_emotions", "emotion_scores", "key_phrases",
	} {
		assert.Contains(t, raw, key)
	}

	var report moodscope.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Contains(t, []moodscope.SentimentLabel{moodscope.Positive, moodscope.VeryPositive}, report.SentimentLabel)
	assert.Contains(t, []moodscope.Emotion{moodscope.Joy, moodscope.Gratitude}, report.PrimaryEmotion)
	assert.Equal(t, []string{"happy", "grateful", "today"}, report.KeyPhrases)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("POST", "/analyze-entry", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Analyses.WithLabelValues(string(report.SentimentLabel))))
}

func TestAnalyzeEntryURLEncoded(t *testing.T) {
	s, _ := testServer(t)

	form := url.Values{"text": {"I am furious and terrified"}}
	req := httptest.NewRequest(http.MethodPost, "/analyze-entry", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report moodscope.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Contains(t, []moodscope.SentimentLabel{moodscope.Negative, moodscope.VeryNegative}, report.SentimentLabel)
	assert.Greater(t, report.EmotionScores[moodscope.Fear], 0.0)
}

func TestAnalyzeEntryEmptyText(t *testing.T) {
	s, _ := testServer(t)

	rec := serve(s, multipartRequest(t, formPart{name: "text", content: nil}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "neutral", raw["primary_emotion"])
	assert.Equal(t, []interface{}{}, raw["key_phrases"])
	assert.Equal(t, []interface{}{}, raw["secondary_emotions"])
}

func TestAnalyzeEntryRejections(t *testing.T) {
	tests := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		status  int
		message string
	}{
		{
			name: "missing text field",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, formPart{name: "image", filename: "a.png", content: []byte("x")})
			},
			status:  http.StatusBadRequest,
			message: "text is required",
		},
		{
			name: "no form at all",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/analyze-entry", strings.NewReader(`{"text":"hi"}`))
			},
			status:  http.StatusBadRequest,
			message: "text is required",
		},
		{
			name: "invalid utf-8",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, formPart{name: "text", content: []byte("bad \xff\xfe")})
			},
			status:  http.StatusBadRequest,
			message: "text is not valid UTF-8",
		},
		{
			name: "body too large",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t,
					formPart{name: "text", content: []byte("fine")},
					formPart{name: "image", filename: "big.png", content: bytes.Repeat([]byte("x"), 2<<20)},
				)
			},
			status:  http.StatusRequestEntityTooLarge,
			message: "request body too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, collector := testServer(t)

			rec := serve(s, tt.req(t))
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			detail := decodeError(t, rec)
			assert.Equal(t, "InvalidInput", detail.Kind)
			assert.Equal(t, tt.message, detail.Message)
			assert.Equal(t, 1.0, testutil.ToFloat64(collector.Rejections.WithLabelValues("InvalidInput")))
		})
	}
}

func TestAnalyzeEntryTextTooLong(t *testing.T) {
	s, _ := testServer(t, moodscope.WithMaxTextLength(5))

	rec := serve(s, multipartRequest(t, formPart{name: "text", content: []byte("far too long")}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidInput", decodeError(t, rec).Kind)
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, HealthResponse{Status: "ok", Version: "test"}, body)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t)
	serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `moodscope_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	analyzer, err := moodscope.NewAnalyzer()
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	s := NewServer(cfg, analyzer, nil, metrics.NewCollector("moodscope"), "test")

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestID(t *testing.T) {
	s, _ := testServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	rec = serve(s, req)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	rec = serve(s, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/analyze-entry", nil)
	req.Header.Set("Origin", "https://journal.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec := serve(s, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	s, _ := testServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decodeError(t, rec).Kind)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/analyze-entry", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
