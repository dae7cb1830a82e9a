// Package tracks models probed video, audio and subtitle streams and renders
// the one-line (two for video) summaries printed in NFO track sections.
//
// Summaries apply the release conventions used by the scene: codec shorthand
// (E-AC-3 as DD+), weighted channel counts (L R C LFE as 3.1), canonical
// dynamic range labels and suppression of track titles that only repeat the
// language, codec or channel information already on the line.
package tracks
