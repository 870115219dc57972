package ppu

// masterPalette is the fixed 64-color NES PPU output palette, indexed by
// the 6-bit color index stored in pattern/palette RAM.
var masterPalette = [64][3]uint8{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96},
	{0xA1, 0x00, 0x5E}, {0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00},
	{0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00}, {0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E},
	{0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},

	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA},
	{0xEB, 0x2F, 0xB5}, {0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00},
	{0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00}, {0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55},
	{0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},

	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF},
	{0xFF, 0x45, 0xF3}, {0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12},
	{0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E}, {0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4},
	{0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},

	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB},
	{0xFF, 0xA8, 0xF9}, {0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6},
	{0xFF, 0xF7, 0x9C}, {0xD7, 0xFF, 0xB3}, {0xC6, 0xFF, 0xDE}, {0xC4, 0xFF, 0xF6},
	{0xC4, 0xF0, 0xFF}, {0xCC, 0xCC, 0xCC}, {0x3C, 0x3C, 0x3C}, {0x3C, 0x3C, 0x3C},
}

// paletteIndex maps a palette-RAM address to its canonical slot: the
// background-color mirrors at $10/$14/$18/$1C alias $00/$04/$08/$0C.
func paletteIndex(addr uint8) uint8 {
	addr &= 0x1F
	if addr >= 0x10 && addr%4 == 0 {
		addr &= 0x0F
	}
	return addr
}

func (p *PPU) readPalette(addr uint8) uint8 {
	v := p.paletteRAM[paletteIndex(addr)]
	if p.mask&maskGreyscale != 0 {
		v &= 0x30
	}
	return v
}

func (p *PPU) writePalette(addr uint8, value uint8) {
	p.paletteRAM[paletteIndex(addr)] = value & 0x3F
}

func rgbOf(colorIndex uint8) (r, g, b uint8) {
	c := masterPalette[colorIndex&0x3F]
	return c[0], c[1], c[2]
}
