package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/lumen-social/cli/pkg/config"
	"github.com/lumen-social/cli/pkg/logger"
)

// UploadResponse is the media host's answer: a durable URL to store as
// a post's ImageURL.
type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

// UploadImage uploads an image file to the external media host and
// returns the durable URL. The media host is a separate collaborator
// from the API server, so this goes through its own resty client.
func UploadImage(ctx context.Context, filePath string) (*UploadResponse, error) {
	logger.Debug("Uploading image", "file_path", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	var result UploadResponse
	resp, err := resty.New().
		SetBaseURL(config.GetString("media.base_url")).
		R().
		SetContext(ctx).
		SetHeader("Content-Type", writer.FormDataContentType()).
		SetBody(body.Bytes()).
		SetResult(&result).
		Post("/upload")

	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if !resp.IsSuccess() {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: "image upload failed"}
	}
	if result.URL == "" {
		return nil, &Error{Message: "media host returned no URL"}
	}

	logger.Debug("Image uploaded", "url", result.URL)
	return &result, nil
}
