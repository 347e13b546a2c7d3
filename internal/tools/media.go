package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// MediaTools covers the media library.
type MediaTools struct {
	client *ghl.Client
}

// NewMediaTools creates the media module.
func NewMediaTools(client *ghl.Client) *MediaTools {
	return &MediaTools{client: client}
}

// Name implements Module.
func (t *MediaTools) Name() string { return "media" }

func (t *MediaTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "get_media_files",
				Description: "List media library files and folders",
				InputSchema: schema(map[string]Property{
					"query":      stringProp("Free-text search over file names"),
					"type":       enumProp("Entry type filter", "file", "folder"),
					"sortBy":     stringPropDefault("Sort field", "createdAt"),
					"sortOrder":  enumProp("Sort direction", "asc", "desc"),
					"limit":      numberPropDefault("Maximum number of results", 20),
					"offset":     numberPropDefault("Number of results to skip", 0),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getFiles,
		},
		{
			tool: Tool{
				Name:        "upload_media_file",
				Description: "Upload a local file or a hosted URL into the media library",
				InputSchema: schema(map[string]Property{
					"filePath":   stringProp("Path to a local file to upload (exclusive with fileUrl)"),
					"fileUrl":    stringProp("URL of a hosted file to import (exclusive with filePath)"),
					"name":       stringProp("Display name for the uploaded file"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.uploadFile,
		},
		{
			tool: Tool{
				Name:        "delete_media_file",
				Description: "Delete a file or folder from the media library",
				InputSchema: schema(map[string]Property{
					"fileId":     stringProp("The media entry's unique identifier"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "fileId"),
			},
			handler: t.deleteFile,
		},
	}
}

func (t *MediaTools) getFiles(ctx context.Context, args Args) (*Result, error) {
	files, err := t.client.GetMediaFiles(ctx, ghl.GetMediaFilesParams{
		LocationID: args.String("locationId"),
		Query:      args.String("query"),
		Type:       args.String("type"),
		SortBy:     args.String("sortBy"),
		SortOrder:  args.String("sortOrder"),
		Limit:      args.Int("limit"),
		Offset:     args.Int("offset"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get media files: %w", err)
	}
	return ok(fmt.Sprintf("Found %d media entries", len(files)), files), nil
}

func (t *MediaTools) uploadFile(ctx context.Context, args Args) (*Result, error) {
	filePath := args.String("filePath")
	fileURL := args.String("fileUrl")
	// Validated here so a bad call never opens a file or touches the network.
	if filePath == "" && fileURL == "" {
		return nil, errors.New("either filePath or fileUrl must be provided")
	}
	if filePath != "" && fileURL != "" {
		return nil, errors.New("filePath and fileUrl are mutually exclusive")
	}
	file, err := t.client.UploadMediaFile(ctx, ghl.UploadMediaParams{
		LocationID: args.String("locationId"),
		FilePath:   filePath,
		FileURL:    fileURL,
		Hosted:     fileURL != "",
		Name:       args.String("name"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload media file: %w", err)
	}
	return ok(fmt.Sprintf("File uploaded with ID %s", file.ID), file), nil
}

func (t *MediaTools) deleteFile(ctx context.Context, args Args) (*Result, error) {
	fileID := args.String("fileId")
	if err := t.client.DeleteMediaFile(ctx, args.String("locationId"), fileID); err != nil {
		return nil, fmt.Errorf("failed to delete media file: %w", err)
	}
	return ok(fmt.Sprintf("Media entry %s deleted", fileID), nil), nil
}
