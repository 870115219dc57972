package ppu

// renderTick runs the background/sprite fetch pipeline and produces one
// pixel of output per dot on visible scanlines. It is called once per Step,
// i.e. once per PPU dot, before the cycle/scanline counters advance.
func (p *PPU) renderTick() {
	if !p.isRenderLine() {
		return
	}

	if p.Cycle >= 1 && p.Cycle <= 256 {
		p.fetchBackgroundByte()
		if p.isVisibleLine() {
			p.outputPixel()
		}
		p.shiftBackgroundRegisters()
		if p.Cycle == 256 && p.renderingEnabled() {
			p.incrementCoarseY()
		}
	}

	if p.Cycle == 257 && p.renderingEnabled() {
		p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
		p.fineX = p.fineXTemp
		if p.isVisibleLine() {
			p.evaluateSprites()
		}
	}

	if p.Cycle >= 321 && p.Cycle <= 336 {
		p.fetchBackgroundByte()
		p.shiftBackgroundRegisters()
	}
}

// fetchBackgroundByte advances the 8-dot nametable/attribute/pattern fetch
// sequence and reloads the shift registers with the previous tile's data
// every 8th dot, matching the real PPU's fetch-ahead pipeline.
func (p *PPU) fetchBackgroundByte() {
	switch p.Cycle % 8 {
	case 1:
		p.reloadShiftRegisters()
		ntAddr := 0x2000 | (p.v & 0x0FFF)
		p.nextTileID = p.readVRAM(ntAddr)
	case 3:
		attrAddr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
		attr := p.readVRAM(attrAddr)
		shift := ((p.v >> 4) & 4) | (p.v & 2)
		p.nextAttr = (attr >> shift) & 0x03
	case 5:
		fineY := (p.v >> 12) & 0x07
		addr := p.bgPatternTable() + uint16(p.nextTileID)*16 + fineY
		p.nextTileLo = p.readVRAM(addr)
	case 7:
		fineY := (p.v >> 12) & 0x07
		addr := p.bgPatternTable() + uint16(p.nextTileID)*16 + fineY + 8
		p.nextTileHi = p.readVRAM(addr)
	case 0:
		if p.renderingEnabled() {
			p.incrementCoarseX()
		}
	}
}

func (p *PPU) reloadShiftRegisters() {
	p.bgShiftLo = (p.bgShiftLo & 0xFF00) | uint16(p.nextTileLo)
	p.bgShiftHi = (p.bgShiftHi & 0xFF00) | uint16(p.nextTileHi)
	attrLo := uint16(0)
	attrHi := uint16(0)
	if p.nextAttr&0x01 != 0 {
		attrLo = 0xFF
	}
	if p.nextAttr&0x02 != 0 {
		attrHi = 0xFF
	}
	p.attrShiftLo = (p.attrShiftLo & 0xFF00) | attrLo
	p.attrShiftHi = (p.attrShiftHi & 0xFF00) | attrHi
}

func (p *PPU) shiftBackgroundRegisters() {
	if !p.renderingEnabled() {
		return
	}
	p.bgShiftLo <<= 1
	p.bgShiftHi <<= 1
	p.attrShiftLo <<= 1
	p.attrShiftHi <<= 1
}

// incrementCoarseX implements loopy's coarse-X increment with nametable
// wraparound, run once every 8 dots during active fetching.
func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementCoarseY implements loopy's once-per-scanline Y increment,
// including the fine-Y carry and the 240/256 nametable-row wraparound.
func (p *PPU) incrementCoarseY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v & ^uint16(0x03E0)) | (y << 5)
}

// outputPixel composes the background and sprite pixel for the current
// dot (Cycle-1, Scanline) and writes it into the back framebuffer.
func (p *PPU) outputPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	bgPixel, bgPalette := p.backgroundPixel(x)
	sprPixel, sprPalette, sprPriority, isZero := p.spritePixel(x)

	var colorIndex uint8
	switch {
	case bgPixel == 0 && sprPixel == 0:
		colorIndex = p.readPalette(0)
	case bgPixel == 0:
		colorIndex = p.readPalette(0x10 + sprPalette*4 + sprPixel)
	case sprPixel == 0:
		colorIndex = p.readPalette(bgPalette*4 + bgPixel)
	default:
		if isZero && x != 255 && p.spriteZeroHitAllowed(x) {
			p.status |= statusSprite0Hit
		}
		if sprPriority == 0 {
			colorIndex = p.readPalette(0x10 + sprPalette*4 + sprPixel)
		} else {
			colorIndex = p.readPalette(bgPalette*4 + bgPixel)
		}
	}

	r, g, b := rgbOf(colorIndex)
	offset := (y*screenWidth + x) * 4
	p.back[offset+0] = r
	p.back[offset+1] = g
	p.back[offset+2] = b
	p.back[offset+3] = 0xFF
}

// spriteZeroHitAllowed reports whether a sprite-0 hit may assert at column
// x: real hardware suppresses the hit in the leftmost 8 columns unless both
// background and sprite left-edge clipping are disabled.
func (p *PPU) spriteZeroHitAllowed(x int) bool {
	if x >= 8 {
		return true
	}
	return p.mask&maskBGLeft != 0 && p.mask&maskSpriteLeft != 0
}

func (p *PPU) backgroundPixel(x int) (pixel, palette uint8) {
	if p.mask&maskBGShow == 0 {
		return 0, 0
	}
	if x < 8 && p.mask&maskBGLeft == 0 {
		return 0, 0
	}
	mux := uint16(0x8000) >> p.fineX
	lo := uint8(0)
	hi := uint8(0)
	if p.bgShiftLo&mux != 0 {
		lo = 1
	}
	if p.bgShiftHi&mux != 0 {
		hi = 1
	}
	pixel = (hi << 1) | lo

	attrLo := uint8(0)
	attrHi := uint8(0)
	if p.attrShiftLo&mux != 0 {
		attrLo = 1
	}
	if p.attrShiftHi&mux != 0 {
		attrHi = 1
	}
	palette = (attrHi << 1) | attrLo
	return pixel, palette
}
