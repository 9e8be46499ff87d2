package fetch

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ytget/yt-browser/internal/model"
)

// Default values
const (
	DefaultEntryTitle      = "Unknown"
	DefaultCollectionTitle = "Playlist"
)

// JSON field markers
const (
	TypeField    = "_type"
	PlaylistType = "playlist"
)

// ParseFlatListing parses yt-dlp flat-playlist output for sourceURL into a
// complete collection. Two shapes are accepted: a single JSON document
// (either a playlist object with an entries array, or one video object) and
// NDJSON with one entry object per line. Collection metadata comes from the
// playlist object when present, otherwise from the playlist_* fields every
// NDJSON entry carries.
func ParseFlatListing(raw, sourceURL string) (*model.CollectionInfo, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty listing output")
	}

	music := IsMusicURL(sourceURL)

	if gjson.Valid(trimmed) {
		doc := gjson.Parse(trimmed)
		if doc.Get(TypeField).String() == PlaylistType {
			return parsePlaylistDocument(doc, sourceURL, music)
		}
		return parseSingleVideo(doc, sourceURL, music), nil
	}

	return parseEntryLines(trimmed, sourceURL, music)
}

// parsePlaylistDocument handles the single-document playlist shape
func parsePlaylistDocument(doc gjson.Result, sourceURL string, music bool) (*model.CollectionInfo, error) {
	info := model.NewCollectionInfo(sourceURL)
	info.IsPlaylist = true
	info.ID = doc.Get("id").String()
	info.Title = stringOr(doc.Get("title"), DefaultCollectionTitle)
	info.Uploader = firstString(doc.Get("uploader"), doc.Get("channel"))
	info.Thumbnail = thumbnailOf(doc)

	doc.Get("entries").ForEach(func(_, entry gjson.Result) bool {
		if converted, ok := convertEntry(entry, sourceURL, music); ok {
			info.Entries = append(info.Entries, converted)
		}
		return true
	})

	info.TotalCount = len(info.Entries)
	info.LoadedAt = time.Now()
	return info, nil
}

// parseSingleVideo handles a bare video URL: the result is a one-entry
// collection carrying the video's own metadata at the collection level.
func parseSingleVideo(doc gjson.Result, sourceURL string, music bool) *model.CollectionInfo {
	info := model.NewCollectionInfo(sourceURL)
	info.IsPlaylist = false
	info.ID = doc.Get("id").String()
	info.Title = stringOr(doc.Get("title"), DefaultEntryTitle)
	info.Uploader = firstString(doc.Get("uploader"), doc.Get("channel"))
	info.Thumbnail = thumbnailOf(doc)
	info.TotalCount = 1
	info.LoadedAt = time.Now()

	duration := durationOf(doc)
	info.Entries = []model.CollectionEntry{{
		ID:          doc.Get("id").String(),
		URL:         sourceURL,
		Title:       stringOr(doc.Get("title"), DefaultEntryTitle),
		DurationSec: duration,
		Thumbnail:   thumbnailOf(doc),
		Uploader:    firstString(doc.Get("uploader"), doc.Get("channel")),
		IsMusic:     model.ClassifyMusic(duration, music),
		IsLive:      isLive(doc),
		IsShort:     model.ClassifyShort(duration),
	}}
	return info
}

// parseEntryLines handles the NDJSON shape
func parseEntryLines(raw, sourceURL string, music bool) (*model.CollectionInfo, error) {
	var lines []gjson.Result
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !gjson.Valid(line) {
			continue
		}
		lines = append(lines, gjson.Parse(line))
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no valid JSON found in listing output")
	}

	if len(lines) == 1 && lines[0].Get(TypeField).String() != PlaylistType {
		return parseSingleVideo(lines[0], sourceURL, music), nil
	}

	info := model.NewCollectionInfo(sourceURL)
	info.IsPlaylist = true

	first := lines[0]
	info.ID = first.Get("playlist_id").String()
	info.Title = stringOr(first.Get("playlist_title"), DefaultCollectionTitle)
	info.Uploader = firstString(first.Get("playlist_uploader"), first.Get("channel"))

	for _, line := range lines {
		if converted, ok := convertEntry(line, sourceURL, music); ok {
			info.Entries = append(info.Entries, converted)
		}
	}

	info.TotalCount = len(info.Entries)
	info.LoadedAt = time.Now()
	return info, nil
}

// convertEntry maps one flat-playlist entry object to a collection entry.
// Entries without an ID are skipped.
func convertEntry(entry gjson.Result, sourceURL string, music bool) (model.CollectionEntry, bool) {
	id := entry.Get("id").String()
	if id == "" {
		return model.CollectionEntry{}, false
	}

	duration := durationOf(entry)

	// YouTube flat entries carry unusable URL fields; synthesize the
	// canonical watch URL instead. Other extractors keep their own.
	entryURL := entry.Get("url").String()
	if IsYouTubeURL(sourceURL) {
		entryURL = WatchURL(id, music)
	}

	return model.CollectionEntry{
		ID:          id,
		URL:         entryURL,
		Title:       stringOr(entry.Get("title"), DefaultEntryTitle),
		DurationSec: duration,
		Thumbnail:   thumbnailOf(entry),
		Uploader:    firstString(entry.Get("uploader"), entry.Get("channel")),
		IsMusic:     model.ClassifyMusic(duration, music),
		IsLive:      isLive(entry),
		IsShort:     model.ClassifyShort(duration),
	}, true
}

// durationOf returns the entry duration in seconds, negative when unknown
func durationOf(entry gjson.Result) float64 {
	d := entry.Get("duration")
	if !d.Exists() || d.Type == gjson.Null {
		return -1
	}
	return d.Float()
}

// thumbnailOf returns the direct thumbnail URL or the first of the
// thumbnails array.
func thumbnailOf(entry gjson.Result) string {
	if t := entry.Get("thumbnail").String(); t != "" {
		return t
	}
	return entry.Get("thumbnails.0.url").String()
}

// isLive reports whether the entry is a live or upcoming broadcast
func isLive(entry gjson.Result) bool {
	status := entry.Get("live_status").String()
	return status == "is_live" || status == "is_upcoming"
}

// stringOr returns the result's string value or a fallback when empty
func stringOr(r gjson.Result, fallback string) string {
	if s := r.String(); s != "" {
		return s
	}
	return fallback
}

// firstString returns the first non-empty string among the results
func firstString(results ...gjson.Result) string {
	for _, r := range results {
		if s := r.String(); s != "" {
			return s
		}
	}
	return ""
}
