package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNROM16KBMirrorsIntoBothHalves(t *testing.T) {
	prg := make([]uint8, 0x4000)
	prg[0] = 0xAA
	prg[0x3FFF] = 0xBB
	m, err := New(KindNROM, prg, nil, make([]uint8, 0x2000), nil, MirrorVertical)
	assert.NoError(t, err)

	assert.Equal(t, uint8(0xAA), m.ReadPRG(0x8000))
	assert.Equal(t, uint8(0xAA), m.ReadPRG(0xC000), "16KB PRG should mirror at $C000")
	assert.Equal(t, uint8(0xBB), m.ReadPRG(0xFFFF))
}

func TestNROMMirroringIsFixedFromHeader(t *testing.T) {
	m, _ := New(KindNROM, make([]uint8, 0x4000), nil, nil, nil, MirrorHorizontal)
	assert.Equal(t, MirrorHorizontal, m.Mirroring())
}

func TestMMC1SerialLoadUpdatesControlRegister(t *testing.T) {
	m, _ := New(KindMMC1, make([]uint8, 0x8000), nil, make([]uint8, 0x2000), nil, MirrorHorizontal)

	// Write control=0x0F (mirroring=3 horizontal, prgMode=3, chrMode=0) one
	// bit at a time, LSB first, across five consecutive writes to $8000.
	bits := []uint8{1, 1, 1, 1, 0} // 0b01111 -> shifted in LSB-first = 0x0F
	for _, b := range bits {
		m.WritePRG(0x8000, b)
	}

	if m.mmc1.control != 0x0F {
		t.Errorf("expected control=0x0F after 5-bit load, got %02X", m.mmc1.control)
	}
	if m.Mirroring() != MirrorHorizontal {
		t.Errorf("expected horizontal mirroring from control bits, got %v", m.Mirroring())
	}
}

func TestMMC1ResetBitRestoresPRGMode3(t *testing.T) {
	m, _ := New(KindMMC1, make([]uint8, 0x8000), nil, nil, nil, MirrorHorizontal)
	m.mmc1.prgMode = 0

	m.WritePRG(0x8000, 0x80) // reset bit set

	if m.mmc1.prgMode != 3 {
		t.Errorf("expected PRG mode reset to 3, got %d", m.mmc1.prgMode)
	}
	if m.mmc1.shiftCount != 0 {
		t.Errorf("expected shift count reset, got %d", m.mmc1.shiftCount)
	}
}

func TestMMC1PRGBankSwitchMode3FixesLastBank(t *testing.T) {
	prg := make([]uint8, 0x4000*4) // 4 16KB banks
	prg[0x4000*3] = 0x77           // last bank's first byte
	m, _ := New(KindMMC1, prg, nil, nil, nil, MirrorHorizontal)
	m.mmc1.prgMode = 3

	if got := m.ReadPRG(0xC000); got != 0x77 {
		t.Errorf("expected last PRG bank fixed at $C000, got %02X", got)
	}
}

func TestMMC1CHRRAMIgnoresBankingWhenNoCHRROM(t *testing.T) {
	m, _ := New(KindMMC1, make([]uint8, 0x8000), nil, make([]uint8, 0x2000), nil, MirrorHorizontal)
	m.WriteCHR(0x0010, 0x5A)
	if got := m.ReadCHR(0x0010); got != 0x5A {
		t.Errorf("expected CHR RAM byte round-trip, got %02X", got)
	}
}
