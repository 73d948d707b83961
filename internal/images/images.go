package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

// MaxUploadSize is the ceiling for a single menu image.
const MaxUploadSize = 5 << 20 // 5MB

const maxWidth = 800

// Blob describes one stored image as the blob service reports it.
type Blob struct {
	Pathname    string `json:"pathname"`
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
}

// Client proxies menu-image uploads to the blob storage service.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewClient(endpoint, token string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: strings.TrimRight(endpoint, "/"), token: token, client: client}
}

// Pathname gives every menu item one stable image path so re-uploads
// replace the previous file.
func Pathname(menuItemID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return "menu-images/" + menuItemID + ext
}

// Process decodes a JPEG or PNG, downscales anything wider than 800px,
// and re-encodes as JPEG for upload.
func Process(r io.Reader, filename string) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image format %q", path.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// Upload stores the processed image under pathname and returns the public
// blob record.
func (c *Client) Upload(ctx context.Context, pathname string, data []byte) (Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint+"/"+pathname, bytes.NewReader(data))
	if err != nil {
		return Blob{}, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("X-Cache-Control-Max-Age", "31536000")

	resp, err := c.client.Do(req)
	if err != nil {
		return Blob{}, fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Blob{}, fmt.Errorf("uploading image: unexpected status %d", resp.StatusCode)
	}

	var blob Blob
	if err := json.NewDecoder(resp.Body).Decode(&blob); err != nil {
		return Blob{}, fmt.Errorf("decoding upload response: %w", err)
	}
	return blob, nil
}

// List returns all stored images under the given pathname prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?prefix="+url.QueryEscape(prefix), nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("listing images: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Blobs []Blob `json:"blobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}
	return out.Blobs, nil
}

// Delete removes one stored image by its pathname.
func (c *Client) Delete(ctx context.Context, pathname string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint+"/"+pathname, nil)
	if err != nil {
		return fmt.Errorf("building delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("deleting image: unexpected status %d", resp.StatusCode)
	}
	return nil
}
