package ghl

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadMediaFileMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/medias/upload-file", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "logo.png", header.Filename)
		assert.Equal(t, "logo.png", r.FormValue("name"))

		w.Write([]byte(`{"id":"f1","name":"logo.png","url":"https://cdn.example/logo.png"}`))
	})

	file, err := c.UploadMediaFile(context.Background(), UploadMediaParams{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, "f1", file.ID)
	assert.Equal(t, "https://cdn.example/logo.png", file.URL)
}

func TestUploadMediaFileHosted(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "true", r.FormValue("hosted"))
		assert.Equal(t, "https://example.com/brochure.pdf", r.FormValue("fileUrl"))
		w.Write([]byte(`{"id":"f2","url":"https://cdn.example/brochure.pdf"}`))
	})

	file, err := c.UploadMediaFile(context.Background(), UploadMediaParams{
		Hosted:  true,
		FileURL: "https://example.com/brochure.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "f2", file.ID)
}

func TestGetMediaFilesQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "loc_default", q.Get("altId"))
		assert.Equal(t, "location", q.Get("altType"))
		assert.Equal(t, "file", q.Get("type"))
		assert.Equal(t, "createdAt", q.Get("sortBy"))
		assert.Equal(t, "desc", q.Get("sortOrder"))
		w.Write([]byte(`{"files":[{"id":"f1","name":"logo.png"}]}`))
	})

	files, err := c.GetMediaFiles(context.Background(), GetMediaFilesParams{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "logo.png", files[0].Name)
}
