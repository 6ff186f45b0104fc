package util_test

import (
	"strings"
	"testing"

	"blog-web-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My First Post", "my-first-post"},
		{"  Hello,   World!  ", "hello-world"},
		{"Привет мир", "untitled"},
		{"", "untitled"},
		{"already-safe-slug", "already-safe-slug"},
		{strings.Repeat("a", 60), strings.Repeat("a", 50)},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, util.SanitizeTitle(c.in), "вход: %q", c.in)
	}
}

func TestExtractObjectKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://localhost:9000/blog-uploads/uploads/cover/my-post-123.webp?X-Amz-Signature=abc", "uploads/cover/my-post-123.webp"},
		{"https://s3.amazonaws.com/blog-uploads/uploads/profile/alice-456.webp", "uploads/profile/alice-456.webp"},
		{"https://example.com/images/other.png", ""},
		{"", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, util.ExtractObjectKey(c.in), "вход: %q", c.in)
	}
}
