package ppu

import (
	"testing"

	"github.com/brannigan-dev/nescore/pkg/cartridge/mapper"
	"github.com/stretchr/testify/assert"
)

type fakeCart struct {
	chr    [0x2000]uint8
	mirror mapper.Mirroring
}

func (f *fakeCart) ReadCHR(addr uint16) uint8         { return f.chr[addr%0x2000] }
func (f *fakeCart) WriteCHR(addr uint16, value uint8) { f.chr[addr%0x2000] = value }
func (f *fakeCart) Mirroring() mapper.Mirroring       { return f.mirror }

func TestVerticalMirroringMapsNametable2To0(t *testing.T) {
	p := New()
	p.SetCartridge(&fakeCart{mirror: mapper.MirrorVertical})

	p.writeVRAM(0x2000, 0xAB)
	assert.Equal(t, uint8(0xAB), p.readVRAM(0x2800), "$2800 should mirror $2000 under vertical mirroring")
}

func TestHorizontalMirroringMapsNametable1To0(t *testing.T) {
	p := New()
	p.SetCartridge(&fakeCart{mirror: mapper.MirrorHorizontal})

	p.writeVRAM(0x2000, 0xCD)
	if got := p.readVRAM(0x2400); got != 0xCD {
		t.Errorf("expected $2400 to mirror $2000 under horizontal mirroring, got %02X", got)
	}
}

func TestRegisterWritePPUADDRThenPPUDATA(t *testing.T) {
	p := New()
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2007, 0x77)

	if p.nametableRAM[0] != 0x77 {
		t.Errorf("expected nametable[0]=0x77, got %02X", p.nametableRAM[0])
	}
	if p.v != 0x2001 {
		t.Errorf("expected v incremented to 0x2001, got %04X", p.v)
	}
}

func TestPPUSTATUSReadClearsVBlankAndWriteToggle(t *testing.T) {
	p := New()
	p.status |= statusVBlank
	p.w = true

	v := p.ReadRegister(0x2002)

	if v&statusVBlank == 0 {
		t.Error("expected returned status to still show VBlank set")
	}
	if p.status&statusVBlank != 0 {
		t.Error("expected VBlank flag cleared by the read")
	}
	if p.w {
		t.Error("expected write toggle reset by PPUSTATUS read")
	}
}

func TestPaletteMirroring(t *testing.T) {
	p := New()
	p.writePalette(0x00, 0x0F)
	if got := p.readPalette(0x10); got != 0x0F {
		t.Errorf("expected $3F10 to mirror $3F00, got %02X", got)
	}
}

func TestVBlankSetsAtScanline241Dot1(t *testing.T) {
	p := New()
	p.ctrl = ctrlNMIEnable
	p.Scanline = 240
	p.Cycle = 340

	p.Step() // rolls over into scanline 241, dot 0
	p.Step() // dot 1: VBlank + NMI

	if p.status&statusVBlank == 0 {
		t.Error("expected VBlank flag set entering scanline 241")
	}
	if !p.ConsumeNMI() {
		t.Error("expected NMI request with NMI enabled in PPUCTRL")
	}
}

func TestVBlankClearsAtPreRenderDot1(t *testing.T) {
	p := New()
	p.status |= statusVBlank | statusSprite0Hit
	p.Scanline = preRenderLine
	p.Cycle = 0

	p.Step()

	if p.status&statusVBlank != 0 {
		t.Error("expected VBlank cleared on pre-render line dot 1")
	}
	if p.status&statusSprite0Hit != 0 {
		t.Error("expected sprite-0-hit cleared on pre-render line dot 1")
	}
}

func TestOAMDMAByteWrite(t *testing.T) {
	p := New()
	p.oamAddr = 0x10
	p.WriteOAMByte(0x99)
	if p.oam[0x10] != 0x99 {
		t.Errorf("expected OAM[0x10]=0x99, got %02X", p.oam[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Errorf("expected OAMADDR incremented, got %02X", p.oamAddr)
	}
}

func TestReverseBitsForSpriteHorizontalFlip(t *testing.T) {
	if got := reverseBits(0b10000001); got != 0b10000001 {
		t.Errorf("expected palindrome byte unchanged, got %08b", got)
	}
	if got := reverseBits(0b11000000); got != 0b00000011 {
		t.Errorf("expected 0b00000011, got %08b", got)
	}
}
