package console

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"bufio"
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
)

// wrapPoints computes first-fit line break positions (byte offsets into s)
// for a given line width. Break opportunities come from the UAX#14 line
// wrap segmenter; fragment widths are measured in fixed-width “en”s per
// UAX#11, so East Asian text wraps by its display width, not its rune
// count.
//
//	1. |  SpaceLeft := LineWidth
//	2. |  for each Fragment in Text
//	3. |      if Width(Fragment) > SpaceLeft
//	4. |           insert line break before Fragment
//	5. |           SpaceLeft := LineWidth - Width(Fragment)
//	6. |      else
//	7. |           SpaceLeft := SpaceLeft - Width(Fragment)
func wrapPoints(s string, linewidth int, context *uax11.Context) []int {
	if linewidth <= 0 || s == "" {
		return nil
	}
	if context == nil {
		context = uax11.LatinContext
	}
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(strings.NewReader(s)))
	spaceleft := linewidth
	var breaks []int
	pos := 0
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		fraglen := stringWidth(frag, context)
		if fraglen > spaceleft && pos > 0 {
			breaks = append(breaks, pos)
			spaceleft = linewidth - fraglen
		} else {
			spaceleft -= fraglen
		}
		pos += len(frag)
	}
	return breaks
}

// stringWidth measures the display width of s in fixed-width “en”s.
func stringWidth(s string, context *uax11.Context) int {
	if s == "" {
		return 0
	}
	if context == nil {
		context = uax11.LatinContext
	}
	gstr := grapheme.StringFromString(s)
	return uax11.StringWidth(gstr, context)
}
