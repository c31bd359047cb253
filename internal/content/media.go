package content

import (
	"strings"

	"github.com/sakif/portfolio/internal/model"
)

// MediaKind says how a project's media URL is rendered.
type MediaKind string

const (
	MediaNone          MediaKind = "none"
	MediaImage         MediaKind = "image"
	MediaVideo         MediaKind = "video"          // played inline with <video>
	MediaExternalVideo MediaKind = "external_video" // opened in a new tab
)

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

var videoExtensions = []string{".mp4", ".webm", ".mov"}

// ClassifyMedia guesses the media kind from the URL text alone.
//
// Known video hosts are external; known video file suffixes are local video;
// everything else non-empty is an image. Nothing is fetched or sniffed, so a
// mis-suffixed URL is silently treated as an image.
func ClassifyMedia(url string) MediaKind {
	lower := strings.ToLower(strings.TrimSpace(url))
	if lower == "" {
		return MediaNone
	}

	for _, host := range videoHosts {
		if strings.Contains(lower, host) {
			return MediaExternalVideo
		}
	}

	path := lower
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(path, ext) {
			return MediaVideo
		}
	}

	return MediaImage
}

// ProjectMedia returns the media kind for a project, preferring the explicit
// media_type column over the URL heuristic.
func ProjectMedia(p model.Project) MediaKind {
	if strings.TrimSpace(p.MediaURL) == "" {
		return MediaNone
	}
	switch strings.ToLower(strings.TrimSpace(p.MediaType)) {
	case model.MediaTypeImage:
		return MediaImage
	case model.MediaTypeVideo:
		return MediaVideo
	case model.MediaTypeExternalVideo:
		return MediaExternalVideo
	}
	return ClassifyMedia(p.MediaURL)
}
