package editor

import (
	"io"
	"net/url"
	"regexp"
	"strings"
)

// Attachment size limits enforced before anything is stored.
const (
	MaxVideoSize = 800 << 20 // 800 MiB
	MaxImageSize = 2 << 20   // 2 MiB
)

// FileRef is a picked local file: a name, the size the picker reported,
// and a lazily-consumed content stream.
type FileRef struct {
	Name    string
	Size    int64
	Content io.Reader
}

// VideoRef is the pending video reference: either a remote URL or a local
// file. A nil VideoRef means no new video.
type VideoRef interface {
	// AsText is the serialized form sent in the update payload.
	AsText() string
}

type RemoteVideo struct {
	URL string
}

func (v RemoteVideo) AsText() string { return v.URL }

type LocalVideo struct {
	File FileRef
}

func (v LocalVideo) AsText() string { return v.File.Name }

var youtubeRe = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

// IsYouTubeURL reports whether the URL belongs to the one video host the
// preview iframe supports.
func IsYouTubeURL(raw string) bool {
	return youtubeRe.MatchString(raw)
}

// EmbedURL resolves a recognized video URL to its embeddable form.
// Both long (watch?v=ID) and short (youtu.be/ID) links are handled.
func EmbedURL(raw string) (string, bool) {
	if !IsYouTubeURL(raw) {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if id := u.Query().Get("v"); id != "" {
		return "https://www.youtube.com/embed/" + id, true
	}
	if strings.Contains(u.Host, "youtu.be") {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id, true
		}
	}
	return "", false
}
