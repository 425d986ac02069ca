package images

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// publicIDPattern extracts the Cloudinary public ID from a delivery URL.
var publicIDPattern = regexp.MustCompile(`/v\d+/(\S+)\.\w+`)

// Client deletes stored images via the Cloudinary API.
type Client struct {
	CloudName string
	APIKey    string
	APISecret string
	HTTP      *http.Client
}

// DestroyByURL removes the image a delivery URL points at.
func (c *Client) DestroyByURL(ctx context.Context, imageURL string) error {
	m := publicIDPattern.FindStringSubmatch(imageURL)
	if m == nil {
		return fmt.Errorf("cloudinary: no public id in url %q", imageURL)
	}
	return c.destroy(ctx, m[1])
}

func (c *Client) destroy(ctx context.Context, publicID string) error {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	// Signature over the sorted API params plus the secret.
	toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.APISecret)
	sum := sha1.Sum([]byte(toSign))

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.APIKey)
	form.Set("signature", hex.EncodeToString(sum[:]))

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloudinary error: status %d body: %s", resp.StatusCode, string(body))
	}
	return nil
}
