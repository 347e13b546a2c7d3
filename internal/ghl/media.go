package ghl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// MediaFile is an entry in the media library.
type MediaFile struct {
	ID        string `json:"id,omitempty"`
	AltID     string `json:"altId,omitempty"`
	Name      string `json:"name,omitempty"`
	URL       string `json:"url,omitempty"`
	Path      string `json:"path,omitempty"`
	Type      string `json:"type,omitempty"`
	ParentID  string `json:"parentId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// GetMediaFilesParams filters a media library listing.
type GetMediaFilesParams struct {
	LocationID string
	Query      string
	Type       string // "file" | "folder"
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// GetMediaFiles lists media library entries.
func (c *Client) GetMediaFiles(ctx context.Context, p GetMediaFilesParams) ([]MediaFile, error) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	if p.SortOrder == "" {
		p.SortOrder = "desc"
	}
	if p.Type == "" {
		p.Type = "file"
	}
	q := url.Values{}
	q.Set("altId", c.defaultLocationID(p.LocationID))
	q.Set("altType", "location")
	q.Set("sortBy", p.SortBy)
	q.Set("sortOrder", p.SortOrder)
	q.Set("type", p.Type)
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	data, err := c.do(ctx, http.MethodGet, "/medias/files", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Files []MediaFile `json:"files"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Files, nil
}

// UploadMediaParams describes an upload. Exactly one of FilePath (a local
// file sent as multipart) or FileURL with Hosted=true (a remote URL the
// platform fetches) must be set; callers are expected to validate this
// before any request is made.
type UploadMediaParams struct {
	LocationID string
	FilePath   string
	FileURL    string
	Hosted     bool
	Name       string
}

// UploadMediaFile pushes a file into the media library.
func (c *Client) UploadMediaFile(ctx context.Context, p UploadMediaParams) (*MediaFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if p.Hosted {
		if err := w.WriteField("hosted", "true"); err != nil {
			return nil, fmt.Errorf("ghl: build upload form: %w", err)
		}
		if err := w.WriteField("fileUrl", p.FileURL); err != nil {
			return nil, fmt.Errorf("ghl: build upload form: %w", err)
		}
	} else {
		f, err := os.Open(p.FilePath)
		if err != nil {
			return nil, fmt.Errorf("ghl: open upload file: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("file", filepath.Base(p.FilePath))
		if err != nil {
			return nil, fmt.Errorf("ghl: build upload form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, fmt.Errorf("ghl: read upload file: %w", err)
		}
	}

	name := p.Name
	if name == "" && p.FilePath != "" {
		name = filepath.Base(p.FilePath)
	}
	if name != "" {
		if err := w.WriteField("name", name); err != nil {
			return nil, fmt.Errorf("ghl: build upload form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("ghl: build upload form: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/medias/upload-file", nil, nil,
		withRawBody(w.FormDataContentType(), &buf))
	if err != nil {
		return nil, err
	}
	var file MediaFile
	if err := decode(data, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteMediaFile removes a media library entry.
func (c *Client) DeleteMediaFile(ctx context.Context, locationID, fileID string) error {
	q := url.Values{}
	q.Set("altId", c.defaultLocationID(locationID))
	q.Set("altType", "location")
	_, err := c.do(ctx, http.MethodDelete, "/medias/"+fileID, q, nil)
	return err
}
