package ppu

// evaluateSprites scans primary OAM for up to 8 sprites that intersect the
// NEXT scanline (the real PPU evaluates one line ahead during dots
// 65-256; here it happens once at dot 257 for simplicity) and fetches
// their pattern data for spriteScanline. Real silicon has a diagonal-read
// bug that corrupts sprite data past the 8th match; this core deliberately
// implements only the clean "stop after 8, set overflow" behavior. Scanning
// starts at OAMADDR/4, matching hardware that evaluates from the OAM slot
// left pointing at by the last $2003/$2004 write rather than always slot 0.
func (p *PPU) evaluateSprites() {
	for i := range p.spriteScanline {
		p.spriteScanline[i] = spriteSlot{}
	}

	targetLine := p.Scanline + 1
	height := p.spriteHeight()
	count := 0
	start := int(p.oamAddr / 4)

	for n := 0; n < 64; n++ {
		i := (start + n) % 64
		y := int(p.oam[i*4+0]) + 1
		if targetLine < y || targetLine >= y+height {
			continue
		}
		if count == 8 {
			p.status |= statusSpriteOverflow
			break
		}

		tileIndex := p.oam[i*4+1]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]

		row := targetLine - y
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var base uint16
		var tileLo, tileHi uint8
		if height == 16 {
			table := uint16(tileIndex&0x01) * 0x1000
			tile := uint16(tileIndex &^ 0x01)
			if row >= 8 {
				tile++
				row -= 8
			}
			base = table + tile*16
		} else {
			base = p.spritePatternTable() + uint16(tileIndex)*16
		}
		tileLo = p.readVRAM(base + uint16(row))
		tileHi = p.readVRAM(base + uint16(row) + 8)

		if attr&0x40 != 0 { // horizontal flip
			tileLo = reverseBits(tileLo)
			tileHi = reverseBits(tileHi)
		}

		p.spriteScanline[count] = spriteSlot{
			valid:  true,
			x:      x,
			tileLo: tileLo,
			tileHi: tileHi,
			attr:   attr,
			isZero: i == 0,
		}
		count++
	}
	p.spriteCount = count
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixel returns the sprite color index, palette, priority bit (0 =
// in front of background), and whether the contributing sprite is OAM
// slot zero, for the pixel at x on the current scanline.
func (p *PPU) spritePixel(x int) (pixel, palette, priority uint8, isZero bool) {
	if p.mask&maskSpriteShow == 0 {
		return 0, 0, 0, false
	}
	if x < 8 && p.mask&maskSpriteLeft == 0 {
		return 0, 0, 0, false
	}
	for i := 0; i < p.spriteCount; i++ {
		s := p.spriteScanline[i]
		if !s.valid {
			continue
		}
		offset := x - int(s.x)
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		lo := (s.tileLo >> bit) & 1
		hi := (s.tileHi >> bit) & 1
		px := (hi << 1) | lo
		if px == 0 {
			continue
		}
		return px, s.attr & 0x03, (s.attr >> 5) & 1, s.isZero
	}
	return 0, 0, 0, false
}
