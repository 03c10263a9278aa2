package editor

import "testing"

func TestIsYouTubeURL(t *testing.T) {
	cases := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"http://youtube.com/watch?v=abc123", true},
		{"youtube.com/watch?v=abc123", true},
		{"https://youtu.be/abc123", true},
		{"https://vimeo.com/12345", false},
		{"https://example.com/youtube.com", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsYouTubeURL(c.url); got != c.expected {
			t.Errorf("IsYouTubeURL(%q) = %v, expected %v", c.url, got, c.expected)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	cases := []struct {
		url      string
		expected string
		ok       bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123", true},
		{"https://youtu.be/abc123", "https://www.youtube.com/embed/abc123", true},
		{"https://vimeo.com/12345", "", false},
		{"https://www.youtube.com/feed/subscriptions", "", false},
	}

	for _, c := range cases {
		got, ok := EmbedURL(c.url)
		if ok != c.ok || got != c.expected {
			t.Errorf("EmbedURL(%q) = (%q, %v), expected (%q, %v)", c.url, got, ok, c.expected, c.ok)
		}
	}
}

func TestVideoRefAsText(t *testing.T) {
	remote := RemoteVideo{URL: "https://youtu.be/abc123"}
	if remote.AsText() != "https://youtu.be/abc123" {
		t.Errorf("Unexpected remote text: %s", remote.AsText())
	}

	local := LocalVideo{File: FileRef{Name: "clase1.mp4", Size: 1024}}
	if local.AsText() != "clase1.mp4" {
		t.Errorf("Unexpected local text: %s", local.AsText())
	}
}
