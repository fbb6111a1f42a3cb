package domain

import "strings"

// Storage layout in the remote repository.
const (
	// DataDir is the directory documents are written under.
	DataDir = "data"

	// IndexPath is the location of the rolling source index.
	IndexPath = "index.json"
)

// NormalizeURL canonicalises a user-supplied URL. It trims surrounding
// whitespace, defaults the scheme to https, and strips exactly one
// trailing slash. An empty value after trimming returns ErrMissingURL.
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", ErrMissingURL
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + strings.TrimLeft(u, "/")
	}
	u = strings.TrimSuffix(u, "/")
	return u, nil
}

// filenameReplacer maps URL characters that cannot appear in a
// repository path to underscores.
var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"?", "_",
	"&", "_",
	"=", "_",
	"#", "_",
)

// FilenameForURL derives the storage filename for a URL. The mapping is
// stable: existing repositories rely on it, so it must not change.
func FilenameForURL(url string) string {
	name := strings.TrimPrefix(url, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = filenameReplacer.Replace(name)
	name = strings.Trim(name, "_")
	return name + ".json"
}

// DocumentPathForURL derives the full storage path for a URL's document.
func DocumentPathForURL(url string) string {
	return DataDir + "/" + FilenameForURL(url)
}
