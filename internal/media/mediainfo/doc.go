// Package mediainfo provides a typed wrapper around `mediainfo --Output=JSON`.
//
// Key types:
//   - Result: the parsed track list of one media file
//
// Primary entry points:
//   - Inspect: executes mediainfo and returns the parsed Result
//   - Parse: decodes an already captured JSON payload
//
// Result converts MediaInfo tracks into tracks.Video, tracks.Audio and
// tracks.Subtitle values, reads chapters from the Menu track and exposes
// catalog IDs embedded in the General track's tags.
package mediainfo
