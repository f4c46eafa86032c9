package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfilePicURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back to default", "", DefaultProfilePic},
		{"absolute http untouched", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https untouched", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"already rooted untouched", "/assets/images/profiles/a.jpg", "/assets/images/profiles/a.jpg"},
		{"assets relative gets leading slash", "assets/images/profiles/a.jpg", "/assets/images/profiles/a.jpg"},
		{"images relative gets assets prefix", "images/profiles/a.jpg", "/assets/images/profiles/a.jpg"},
		{"profiles relative gets images root", "profiles/a.jpg", "/assets/images/profiles/a.jpg"},
		{"bare filename rooted under profiles", "pic.jpg", "/assets/images/profiles/pic.jpg"},
		{"nested unknown path keeps last segment", "some/dir/pic.jpg", "/assets/images/profiles/pic.jpg"},
		{"backslashes normalized first", `profiles\a.jpg`, "/assets/images/profiles/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfilePicURL(tt.raw))
		})
	}
}

func TestPostImageURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty stays empty", "", ""},
		{"absolute untouched", "https://cdn.example.com/p.jpg", "https://cdn.example.com/p.jpg"},
		{"already rooted untouched", "/assets/images/posts/p.jpg", "/assets/images/posts/p.jpg"},
		{"assets relative gets leading slash", "assets/images/posts/p.jpg", "/assets/images/posts/p.jpg"},
		{"images relative gets assets prefix", "images/posts/p.jpg", "/assets/images/posts/p.jpg"},
		{"posts relative gets images root", "posts/p.jpg", "/assets/images/posts/p.jpg"},
		{"bare filename rooted under posts", "p.jpg", "/assets/images/posts/p.jpg"},
		{"backslashes normalized first", `posts\p.jpg`, "/assets/images/posts/p.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostImageURL(tt.raw))
		})
	}
}

// The clause order is a contract: "assets/images/..." also matches the
// bare-filename fallback, and "images/profiles/..." also matches the
// profiles clause. Earlier clauses must win.
func TestNormalizationPrecedence(t *testing.T) {
	assert.Equal(t, "/assets/images/profiles/a.jpg", ProfilePicURL("assets/images/profiles/a.jpg"))
	assert.Equal(t, "/assets/images/profiles/b.jpg", ProfilePicURL("images/profiles/b.jpg"))
	assert.Equal(t, "/assets/images/posts/c.jpg", PostImageURL("images/posts/c.jpg"))
}
