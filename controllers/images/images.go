package imageControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rashii1218/resinArtWebsite/config"
)

// HostClient talks to the external image hosting service. The storefront
// never stores image bytes itself; it forwards them and keeps the returned
// url/public_id pair.
type HostClient struct {
	uploadURL string
	apiKey    string
	client    *http.Client
}

func NewHostClient(cfg config.ImageHost) *HostClient {
	return &HostClient{
		uploadURL: cfg.UploadURL,
		apiKey:    cfg.APIKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an image host was set up at all.
func (h *HostClient) Configured() bool {
	return h.uploadURL != ""
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func (h *HostClient) Upload(ctx context.Context, folder, filename string, file io.Reader) (*UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("folder", folder); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.uploadURL+"/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image host upload failed with status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.URL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("image host returned an incomplete response")
	}
	return &result, nil
}

func (h *HostClient) Delete(ctx context.Context, publicID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		h.uploadURL+"/"+url.PathEscape(publicID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("image host delete failed with status %d", resp.StatusCode)
	}
	return nil
}

// POST /api/images/upload (admin)
func UploadImage(host *HostClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !host.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image hosting is not configured"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file data"})
			return
		}
		defer file.Close()

		// Category pictures land in their own folder; everything else is
		// product art.
		folder := "resin-art"
		if c.Query("type") == "category" {
			folder = "categories"
		}

		result, err := host.Upload(c.Request.Context(), folder, fileHeader.Filename, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// DELETE /api/images/:publicId (admin)
func DeleteImage(host *HostClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !host.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image hosting is not configured"})
			return
		}

		publicID := c.Param("publicId")
		if publicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image ID is required"})
			return
		}

		if err := host.Delete(c.Request.Context(), publicID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting image"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
	}
}
