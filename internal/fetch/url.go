package fetch

import (
	"fmt"
	"strings"
)

// URL parameters and separators
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// Host fragments
const (
	YouTubeHost      = "youtube.com"
	YouTubeShortHost = "youtu.be"
	MusicHost        = "music.youtube.com"
)

// URL templates
const (
	WatchURLTemplate      = "https://www.youtube.com/watch?v=%s"
	MusicWatchURLTemplate = "https://music.youtube.com/watch?v=%s"
)

// IsYouTubeURL reports whether the URL points at a YouTube property
func IsYouTubeURL(url string) bool {
	return strings.Contains(url, YouTubeHost) || strings.Contains(url, YouTubeShortHost)
}

// IsMusicURL reports whether the URL points at the music host. Entries of
// music collections are treated as music regardless of duration.
func IsMusicURL(url string) bool {
	return strings.Contains(strings.ToLower(url), MusicHost)
}

// IsPlaylistURL reports whether the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - https://music.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	if !strings.Contains(url, PlaylistURLParam) {
		return "", fmt.Errorf("URL does not contain playlist parameter: %s", url)
	}

	parts := strings.Split(url, PlaylistURLParam)
	if len(parts) < 2 {
		return "", fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	playlistID := parts[1]
	if strings.Contains(playlistID, PlaylistParamSeparator) {
		playlistID = strings.Split(playlistID, PlaylistParamSeparator)[0]
	}

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID in URL: %s", url)
	}

	return playlistID, nil
}

// WatchURL builds the canonical watch URL for a video ID, staying on the
// music host when the collection came from there so downstream tooling sees
// the same site the user browsed.
func WatchURL(videoID string, music bool) string {
	if music {
		return fmt.Sprintf(MusicWatchURLTemplate, videoID)
	}
	return fmt.Sprintf(WatchURLTemplate, videoID)
}
