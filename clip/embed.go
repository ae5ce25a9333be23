package clip

import (
	"net/url"
	"strconv"
	"strings"
)

// EmbedURL builds an iframe address playing target between its bounds.
// The cache token is appended as a bare query key so identical selections
// still change the address.
func EmbedURL(base string, target PlaybackTarget) string {
	q := url.Values{}
	q.Set("start", strconv.Itoa(target.StartSeconds))
	q.Set("end", strconv.Itoa(target.EndSeconds))
	q.Set("autoplay", "1")
	q.Set("rel", "0")
	q.Set("controls", "1")
	q.Set("modestbranding", "1")

	return strings.TrimRight(base, "/") + "/" + url.PathEscape(target.MediaID) +
		"?" + q.Encode() + "&" + strconv.FormatInt(target.CacheToken, 10)
}

// WatchURL builds a page address for players that resolve media ids
// themselves (mpv through yt-dlp). Bounds are passed to the player separately.
func WatchURL(base string, target PlaybackTarget) string {
	q := url.Values{}
	q.Set("v", target.MediaID)
	q.Set("cb", strconv.FormatInt(target.CacheToken, 10))
	return base + "?" + q.Encode()
}
