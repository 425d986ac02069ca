package images

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDPattern(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1700000000/listings/abc123.jpg": "listings/abc123",
		"https://res.cloudinary.com/demo/image/upload/v1/sample.png":                   "sample",
	}
	for url, want := range cases {
		m := publicIDPattern.FindStringSubmatch(url)
		assert.NotNil(t, m, url)
		assert.Equal(t, want, m[1])
	}
}

func TestDestroyByURL_NoPublicID(t *testing.T) {
	c := &Client{CloudName: "demo"}
	err := c.DestroyByURL(context.Background(), "https://example.com/not-cloudinary.jpg")
	assert.Error(t, err)
}
