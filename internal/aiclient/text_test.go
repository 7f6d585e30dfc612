package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "m", req.Model)
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi there"}]}}]}`))
	}))
	defer srv.Close()

	c := NewTextClient(srv.URL, "k", "m")
	out, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestTextClientEmptyPrompt(t *testing.T) {
	c := NewTextClient("http://unused", "k", "m")
	_, err := c.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestTextClientQuotaAndSafety(t *testing.T) {
	status := http.StatusTooManyRequests
	body := "{}"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()
	c := NewTextClient(srv.URL, "k", "m")

	_, err := c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	status = http.StatusBadRequest
	body = `{"error":{"message":"response blocked"}}`
	_, err = c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrContentBlocked)

	status = http.StatusInternalServerError
	body = "{}"
	_, err = c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "500"))
}

func TestPredictClientJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"prediction":"Urea"}`))
	}))
	defer srv.Close()

	c := NewPredictClient(srv.URL)
	out, err := c.PredictJSON(context.Background(), map[string]int{"nitrogen": 40})
	require.NoError(t, err)
	assert.JSONEq(t, `{"prediction":"Urea"}`, string(out))
}

func TestPredictClientImageMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("img")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "leaf.jpg", header.Filename)
		_, _ = w.Write([]byte(`{"label":"healthy"}`))
	}))
	defer srv.Close()

	c := NewPredictClient(srv.URL)
	out, err := c.PredictImage(context.Background(), strings.NewReader("fake-image-bytes"), "leaf.jpg")
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"healthy"}`, string(out))
}

func TestPredictClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewPredictClient(srv.URL)
	_, err := c.PredictJSON(context.Background(), map[string]int{})
	require.Error(t, err)
}
