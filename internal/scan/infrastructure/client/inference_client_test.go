package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferenceClient_RecognizeText(t *testing.T) {
	var gotPath, gotContentType, gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"text":"Sprite Zero\n$2.49","blocks":[{"x":1}]}`))
	}))
	defer srv.Close()

	c := NewInferenceClient(Config{BaseURL: srv.URL, APIKey: "secret-key", Timeout: 5 * time.Second})

	result, err := c.RecognizeText(context.Background(), []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "/v1/ocr", gotPath)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, []byte("jpeg-bytes"), gotBody, "image bytes are posted as-is")

	assert.Equal(t, "Sprite Zero\n$2.49", result.Text)
	// 原始响应体原样保留,包括未解析的字段
	assert.JSONEq(t, `{"text":"Sprite Zero\n$2.49","blocks":[{"x":1}]}`, string(result.Raw))
}

func TestInferenceClient_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/classify", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "no auth header without api key")
		// 服务端返回裸数组
		_, _ = w.Write([]byte(`[{"label":"beverage","score":0.81},{"label":"snack","score":0.12}]`))
	}))
	defer srv.Close()

	c := NewInferenceClient(Config{BaseURL: srv.URL})

	result, err := c.Classify(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "beverage", result.Candidates[0].Label)
	assert.InDelta(t, 0.81, result.Candidates[0].Score, 1e-9)
	assert.Equal(t, "snack", result.Candidates[1].Label)
}

func TestInferenceClient_AnswerQuestion(t *testing.T) {
	var payload struct {
		ImageB64 string `json:"image_b64"`
		Question string `json:"question"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/vqa", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"answer":"4"}`))
	}))
	defer srv.Close()

	c := NewInferenceClient(Config{BaseURL: srv.URL})

	image := []byte("jpeg-bytes")
	result, err := c.AnswerQuestion(context.Background(), image, "image/jpeg", "How many?")
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(image), payload.ImageB64)
	assert.Equal(t, "How many?", payload.Question)
	assert.Equal(t, "4", result.Answer)
}

func TestInferenceClient_Non2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
	}))
	defer srv.Close()

	c := NewInferenceClient(Config{BaseURL: srv.URL})

	_, err := c.RecognizeText(context.Background(), []byte("x"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestInferenceClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewInferenceClient(Config{BaseURL: srv.URL})

	_, err := c.Classify(context.Background(), []byte("x"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode classification response")
}

func TestInferenceClient_TrimsBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ocr", r.URL.Path)
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	c := NewInferenceClient(Config{BaseURL: srv.URL + "/"})

	_, err := c.RecognizeText(context.Background(), []byte("x"), "image/jpeg")
	require.NoError(t, err)
}
