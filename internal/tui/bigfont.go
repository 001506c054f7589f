package tui

import "github.com/charmbracelet/lipgloss"

// BigFontHeight is the number of rows in every glyph.
const BigFontHeight = 5

var bigGlyphs = map[rune][BigFontHeight]string{
	'0': {"▄▀▀▀▄", "█   █", "█   █", "█   █", "▀▄▄▄▀"},
	'1': {"  ▄█ ", "   █ ", "   █ ", "   █ ", "  ▄█▄"},
	'2': {"▄▀▀▀▄", "    █", "  ▄▀ ", "▄▀   ", "█▄▄▄▄"},
	'3': {"▀▀▀▀█", "   ▄▀", "  ▀▀▄", "    █", "▀▄▄▄▀"},
	'4': {"   ▄█", "  ▄▀█", "▄▀  █", "▀▀▀▀█", "    █"},
	'5': {"█▀▀▀▀", "█▄▄▄ ", "    █", "    █", "▀▄▄▄▀"},
	'6': {" ▄▀▀ ", "█    ", "█▀▀▀▄", "█   █", "▀▄▄▄▀"},
	'7': {"▀▀▀▀█", "   ▄▀", "  █  ", " █   ", " █   "},
	'8': {"▄▀▀▀▄", "█   █", "▄▀▀▀▄", "█   █", "▀▄▄▄▀"},
	'9': {"▄▀▀▀▄", "█   █", "▀▄▄▄█", "    █", " ▄▄▀ "},
	':': {" ", "▀", " ", "▀", " "},
	' ': {" ", " ", " ", " ", " "},
}

// BigText renders s in the block font, one string per row. Glyphs are
// separated by one column. Characters without a glyph are skipped. When
// colon is false every ':' is drawn blank, which is how the clock blinks.
func BigText(s string, colon bool) []string {
	rows := make([]string, BigFontHeight)
	first := true
	for _, r := range s {
		g, ok := bigGlyphs[r]
		if !ok {
			continue
		}
		if r == ':' && !colon {
			g = bigGlyphs[' ']
		}
		for i := range rows {
			if !first {
				rows[i] += " "
			}
			rows[i] += g[i]
		}
		first = false
	}
	return rows
}

// BigTextWidth is the column width of BigText(s, ...).
func BigTextWidth(s string) int {
	rows := BigText(s, true)
	return len([]rune(rows[0]))
}

// DrawBig draws BigText centered on column cx with its top row at y.
func DrawBig(c *Canvas, y, cx int, s string, colon bool, style lipgloss.Style) {
	rows := BigText(s, colon)
	x := cx - BigTextWidth(s)/2
	for i, row := range rows {
		c.Put(y+i, x, row, style)
	}
}
