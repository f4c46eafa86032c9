// Package media normalizes stored image references into client-facing
// asset URLs. Stored values are messy: absolute URLs, already-rooted
// asset paths, folder-relative paths, or bare filenames, with either
// slash style. Normalization is a pure function so it can be unit
// tested without storage.
package media

import "strings"

const (
	assetsPrefix = "/assets/"
	imagesRoot   = "/assets/images/"

	// DefaultProfilePic is served when a user has no profile image.
	DefaultProfilePic = "/assets/images/profiles/default.jpg"
)

// ProfilePicURL normalizes a stored profile image reference.
// An empty reference resolves to the default profile image.
func ProfilePicURL(raw string) string {
	return normalize(raw, "profiles", DefaultProfilePic)
}

// PostImageURL normalizes a stored post or story image reference.
// An empty reference stays empty: posts without images render nothing.
func PostImageURL(raw string) string {
	return normalize(raw, "posts", "")
}

// normalize rewrites raw into a URL rooted under /assets. The clauses
// are order-sensitive and must be checked in exactly this sequence,
// since several of them can match the same string.
func normalize(raw, kindFolder, emptyDefault string) string {
	if raw == "" {
		return emptyDefault
	}

	clean := strings.ReplaceAll(raw, `\`, "/")

	switch {
	case strings.HasPrefix(clean, "http://"), strings.HasPrefix(clean, "https://"):
		return clean
	case strings.HasPrefix(clean, assetsPrefix):
		return clean
	case strings.HasPrefix(clean, "assets/"):
		return "/" + clean
	case strings.HasPrefix(clean, "images/"):
		return "/assets/" + clean
	case strings.HasPrefix(clean, kindFolder+"/"):
		return imagesRoot + clean
	}

	// Bare filename: root it under the kind's default subfolder.
	if idx := strings.LastIndex(clean, "/"); idx >= 0 {
		clean = clean[idx+1:]
	}
	return imagesRoot + kindFolder + "/" + clean
}
