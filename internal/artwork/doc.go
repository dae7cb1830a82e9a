// Package artwork decorates a rendered description with static ASCII art.
//
// NFO output gets the art prepended above the text. BBCode output is
// centered inside [align=center] and every line is padded to a common width
// so forum renderers keep the columns aligned.
package artwork
