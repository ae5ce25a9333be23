package mpv

import "github.com/user/clip-browser/clip"

// PlayTarget loads a resolved clip, addressing it through watchBase.
func (c *Client) PlayTarget(watchBase string, t clip.PlaybackTarget) error {
	return c.LoadClip(clip.WatchURL(watchBase, t), t.StartSeconds, t.EndSeconds)
}
