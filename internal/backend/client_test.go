package backend_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchreel/pitchreel/internal/backend"
	"github.com/pitchreel/pitchreel/internal/errdefs"
	"github.com/pitchreel/pitchreel/internal/upload"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := backend.New("   ")
	assert.Error(t, err)
}

func TestEnhanceSendsMultipartText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/enhance", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hello slides", r.FormValue("text"))
		_, _, err := r.FormFile("csv_file")
		assert.Error(t, err, "no file field expected without an attachment")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hello slides, improved"}`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	enhanced, err := client.Enhance(context.Background(), "hello slides", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello slides, improved", enhanced)
}

func TestEnhanceStreamsAttachment(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/q3.csv", []byte("region,revenue\nwest,10\n"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("csv_file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "q3.csv", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "region,revenue\nwest,10\n", string(content))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"grounded"}`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL, backend.WithFs(fsys))
	require.NoError(t, err)

	att := &upload.Attachment{Name: "q3.csv", Size: 23, Path: "/data/q3.csv"}
	enhanced, err := client.Enhance(context.Background(), "quarterly numbers", att)
	require.NoError(t, err)
	assert.Equal(t, "grounded", enhanced)
}

func TestEnhanceRejectsEmptyTextLocally(t *testing.T) {
	client, err := backend.New("http://backend.invalid")
	require.NoError(t, err)

	_, err = client.Enhance(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.True(t, errdefs.IsValidation(err))
}

func TestGeneratePPTXSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-pptx", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"deck body","template":"dark"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pptx_path":"/uploads/presentation_ab12.pptx"}`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	path, err := client.GeneratePPTX(context.Background(), "deck body", "dark")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/presentation_ab12.pptx", path)
}

func TestConvertVideoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/convert-video", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"pptx_path":"/uploads/deck.pptx"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"video_url":"/static/uploads/deck.mp4"}`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	url, err := client.ConvertVideo(context.Background(), "/uploads/deck.pptx")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/deck.mp4", url)
}

func TestFailureExtractsJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad template"}`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.GeneratePPTX(context.Background(), "text", "modern")
	require.Error(t, err)
	assert.True(t, errdefs.IsRemote(err))
	assert.Equal(t, "bad template", err.Error())
}

func TestFailureExtractsPlainTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("worker pool exhausted\n"))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.ConvertVideo(context.Background(), "/uploads/deck.pptx")
	require.Error(t, err)
	assert.True(t, errdefs.IsRemote(err))
	assert.Equal(t, "worker pool exhausted", err.Error())
}

func TestFailureWithEmptyBodyFallsBackToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.ConvertVideo(context.Background(), "/uploads/deck.pptx")
	require.Error(t, err)
	assert.Equal(t, errdefs.ErrTypeUnexpected, errdefs.TypeOf(err))
	assert.Contains(t, err.Error(), "502")
}

func TestNetworkFailureIsUnexpected(t *testing.T) {
	client, err := backend.New("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.GeneratePPTX(context.Background(), "text", "modern")
	require.Error(t, err)
	assert.Equal(t, errdefs.ErrTypeUnexpected, errdefs.TypeOf(err))
}

func TestMalformedSuccessBodyIsUnexpected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pptx_path":`))
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.GeneratePPTX(context.Background(), "text", "modern")
	require.Error(t, err)
	assert.Equal(t, errdefs.ErrTypeUnexpected, errdefs.TypeOf(err))
}
