// Package ppu implements a cycle-stepped 2C02-style picture processing
// unit: background and sprite rendering, VRAM/OAM address management, and
// NMI generation, driven one PPU dot at a time by the core orchestrator.
package ppu

import (
	"github.com/brannigan-dev/nescore/pkg/cartridge/mapper"
	"github.com/brannigan-dev/nescore/pkg/logger"
)

const (
	screenWidth    = 256
	screenHeight   = 240
	dotsPerLine    = 341
	preRenderLine  = 261
	postRenderLine = 240
)

// Cartridge is the subset of mapper.Mapper the PPU needs: pattern-table
// access and the mapper's current nametable mirroring mode.
type Cartridge interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	Mirroring() mapper.Mirroring
}

// PPU is a 2C02-style picture processing unit.
type PPU struct {
	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8
	oam     [256]uint8

	v, t      uint16
	fineX     uint8
	fineXTemp uint8
	w         bool

	nametableRAM [0x800]uint8 // two physical 1KB nametables
	paletteRAM   [32]uint8

	readBuffer uint8
	openBus    uint8

	cart Cartridge

	Cycle    int
	Scanline int
	Frame    uint64
	oddFrame bool

	nmiPending  bool
	spriteCount int

	front, back [screenWidth * screenHeight * 4]uint8

	// background shift registers
	bgShiftLo, bgShiftHi     uint16
	attrShiftLo, attrShiftHi uint16
	nextTileID, nextAttr     uint8
	nextTileLo, nextTileHi   uint8

	spriteScanline [8]spriteSlot
}

type spriteSlot struct {
	valid  bool
	x      uint8
	tileLo uint8
	tileHi uint8
	attr   uint8
	isZero bool
}

// New creates a PPU with no cartridge attached; SetCartridge must be called
// before Step produces a meaningful picture.
func New() *PPU {
	p := &PPU{}
	p.paletteRAM[0] = 0x0F
	return p
}

// SetCartridge attaches the mapper the PPU reads CHR data and mirroring
// mode from.
func (p *PPU) SetCartridge(cart Cartridge) { p.cart = cart }

// Reset restores power-up register state. VRAM/OAM contents are left as
// they are, matching real hardware (only a few registers are defined at
// reset; RAM is whatever it was).
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.v = 0
	p.t = 0
	p.w = false
	p.Cycle = 0
	p.Scanline = preRenderLine
	p.oddFrame = false
}

// ConsumeNMI reports whether the PPU has asserted its NMI output line since
// the last call to ConsumeNMI, and clears it. The orchestrator polls this
// once per Step to decide whether to raise the CPU's NMI input.
func (p *PPU) ConsumeNMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

// Framebuffer returns the most recently completed frame as tightly packed
// RGBA8888 bytes, 256x240.
func (p *PPU) Framebuffer() []uint8 {
	return p.front[:]
}

// Step advances the PPU by one dot (1/3 of a CPU cycle at NTSC speed).
func (p *PPU) Step() {
	p.renderTick()

	p.Cycle++
	if p.Cycle > dotsPerLine-1 || (p.Scanline == preRenderLine && p.oddFrame && p.Cycle > dotsPerLine-2 && p.renderingEnabled()) {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline > preRenderLine {
			p.Scanline = 0
			p.Frame++
			p.oddFrame = !p.oddFrame
			p.front, p.back = p.back, p.front
		}
	}

	if p.Scanline == postRenderLine+1 && p.Cycle == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiPending = true
			logger.LogPPU("VBlank NMI requested at frame %d", p.Frame)
		}
	}

	if p.Scanline == preRenderLine && p.Cycle == 1 {
		p.status &^= (statusVBlank | statusSprite0Hit | statusSpriteOverflow)
	}

	if p.renderingEnabled() && p.Scanline == preRenderLine && p.Cycle >= 280 && p.Cycle <= 304 {
		p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
	}
}

func (p *PPU) isVisibleLine() bool { return p.Scanline >= 0 && p.Scanline < screenHeight }
func (p *PPU) isRenderLine() bool  { return p.isVisibleLine() || p.Scanline == preRenderLine }

// readVRAM resolves a PPU-bus address ($0000-$3FFF) to pattern table,
// nametable (with mirroring), or palette RAM.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.cart != nil {
			return p.cart.ReadCHR(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.nametableRAM[p.mirrorNametable(addr)]
	default:
		return p.readPalette(uint8(addr))
	}
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.cart != nil {
			p.cart.WriteCHR(addr, value)
		}
	case addr < 0x3F00:
		p.nametableRAM[p.mirrorNametable(addr)] = value
	default:
		p.writePalette(uint8(addr), value)
	}
}

// mirrorNametable maps a $2000-$3EFF address ($3000-$3EFF mirrors
// $2000-$2EFF) onto one of the two physical 1KB nametable pages per the
// cartridge's mirroring mode.
func (p *PPU) mirrorNametable(addr uint16) uint16 {
	rel := (addr - 0x2000) & 0x0FFF
	table := rel / 0x400
	offset := rel % 0x400

	var physical uint16
	mode := mapper.MirrorHorizontal
	if p.cart != nil {
		mode = p.cart.Mirroring()
	}
	switch mode {
	case mapper.MirrorVertical:
		physical = table % 2
	case mapper.MirrorSingleScreenA:
		physical = 0
	case mapper.MirrorSingleScreenB:
		physical = 1
	default: // horizontal, four-screen (four-screen needs extra RAM this core doesn't provide)
		physical = table / 2
	}
	return physical*0x400 + offset
}
