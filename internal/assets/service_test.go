package assets

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeObjectName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"photo.png", "photo.png"},
		{"my photo (1).png", "my-photo--1-.png"},
		{"../../etc/passwd", "etc-passwd"},
		{"é.jpg", "jpg"},
		{"", "file"},
		{"///", "file"},
	}
	for _, c := range cases {
		if got := sanitizeObjectName(c.in); got != c.want {
			t.Errorf("sanitizeObjectName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewRequiresConfiguration(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err != ErrNotConfigured {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if _, err := New(context.Background(), Config{Endpoint: "store:9000"}); err != ErrNotConfigured {
		t.Fatalf("missing bucket: err = %v, want ErrNotConfigured", err)
	}
}

func TestPublicURL(t *testing.T) {
	s := &Service{cfg: Config{Endpoint: "store:9000", Bucket: "media"}}
	if got := s.publicURL("a.png"); got != "http://store:9000/media/a.png" {
		t.Errorf("publicURL = %q", got)
	}

	s = &Service{cfg: Config{Endpoint: "store:9000", Bucket: "media", UseSSL: true, PublicBaseURL: "https://cdn.example/media/"}}
	if got := s.publicURL("a.png"); got != "https://cdn.example/media/a.png" {
		t.Errorf("publicURL with base = %q", got)
	}
	if strings.Contains(s.publicURL("a.png"), "//a.png") {
		t.Error("double slash in public URL")
	}
}
