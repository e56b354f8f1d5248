package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Glyph представляет упакованное представление цветного символа карты.
// Использует 32 бита (uint32) для хранения в формате:
//
//	[0:8] - символ (8 бит = 1 байт) - маска 0xFF
//	[8:32] - RGB-цвет (24 бита = 3 байта) - маска 0xFFFFFF
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// Палитра карты
var (
	GlyphPlayer     = MakeGlyph(0xFFFF00, '@')
	GlyphCache      = MakeGlyph(0xFFA500, '$')
	GlyphEmptyCache = MakeGlyph(0x808080, 'o')
	GlyphGround     = MakeGlyph(0x3A5F3A, '.')
)

// MakeGlyph создает Glyph из RGB-цвета 0xRRGGBB и ASCII-символа.
// Лишние старшие биты цвета отбрасываются.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

func (g Glyph) Color() uint32 { return uint32(g>>shiftColor) & maskColor }
func (g Glyph) Char() byte    { return byte(g & maskChar) }

// Style переводит цвет глифа в стиль tcell
func (g Glyph) Style() tcell.Style {
	c := g.Color()
	fg := tcell.NewRGBColor(int32(c>>16&0xFF), int32(c>>8&0xFF), int32(c&0xFF))
	return tcell.StyleDefault.Foreground(fg)
}

// String: "Glyph{char='$', color=#FFA500}"
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=#%06X}", charStr, g.Color())
}
