// Package mapper implements the cartridge PRG/CHR bank-switching logic for
// the two mappers this core supports. Rather than an interface with one
// implementation per mapper number, Mapper is a single tagged-variant
// struct: its Kind field selects which switch-case a method runs, since the
// set of mappers is closed and small and a vtable of one-method-each
// implementations buys nothing a switch doesn't already give for free.
package mapper

import "fmt"

// Kind identifies which mapper variant a Mapper value holds.
type Kind int

const (
	KindNROM Kind = iota
	KindMMC1
)

// Mirroring is the nametable mirroring arrangement the mapper currently
// reports to the PPU. MMC1 can change this at runtime (it owns mirroring
// control bits); NROM's is fixed at load time from the iNES header.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleScreenA
	MirrorSingleScreenB
	MirrorFourScreen
)

// Mapper holds PRG/CHR storage plus whichever variant's bank-switching
// state is relevant for Kind; the other variant's fields stay zeroed.
type Mapper struct {
	Kind Kind

	PRGROM []uint8
	CHRROM []uint8 // empty if the cartridge uses CHR RAM instead
	CHRRAM []uint8
	PRGRAM []uint8

	fixedMirroring Mirroring // NROM: mirroring fixed from the iNES header

	// MMC1 serial-port and register state.
	mmc1 mmc1State
}

// New builds a Mapper for kind over the given ROM/RAM images. headerMirror
// is the mirroring mode declared in the iNES header; NROM uses it for the
// cartridge's lifetime. MMC1 does not use it: its mirroring always comes from
// its control register, whose initial value 0x0C selects single-screen A.
func New(kind Kind, prgROM, chrROM, chrRAM, prgRAM []uint8, headerMirror Mirroring) (*Mapper, error) {
	m := &Mapper{
		Kind:           kind,
		PRGROM:         prgROM,
		CHRROM:         chrROM,
		CHRRAM:         chrRAM,
		PRGRAM:         prgRAM,
		fixedMirroring: headerMirror,
	}
	switch kind {
	case KindNROM, KindMMC1:
	default:
		return nil, fmt.Errorf("unsupported mapper kind %d", kind)
	}
	if kind == KindMMC1 {
		m.mmc1.control = 0x0C
		m.mmc1.prgMode = 3
	}
	return m, nil
}

// ReadPRG reads a CPU-visible PRG ROM/RAM byte ($4020-$FFFF, cartridge side).
func (m *Mapper) ReadPRG(addr uint16) uint8 {
	switch m.Kind {
	case KindNROM:
		return m.nromReadPRG(addr)
	case KindMMC1:
		return m.mmc1ReadPRG(addr)
	}
	return 0
}

// WritePRG handles a CPU write into cartridge space: PRG RAM for NROM, and
// either PRG RAM or the MMC1 serial mapper-register port for MMC1.
func (m *Mapper) WritePRG(addr uint16, value uint8) {
	switch m.Kind {
	case KindNROM:
		m.nromWritePRG(addr, value)
	case KindMMC1:
		m.mmc1WritePRG(addr, value)
	}
}

// ReadCHR reads a PPU-visible pattern-table byte ($0000-$1FFF).
func (m *Mapper) ReadCHR(addr uint16) uint8 {
	switch m.Kind {
	case KindNROM:
		return m.nromReadCHR(addr)
	case KindMMC1:
		return m.mmc1ReadCHR(addr)
	}
	return 0
}

// WriteCHR writes a PPU-visible pattern-table byte; only meaningful when
// the cartridge uses CHR RAM.
func (m *Mapper) WriteCHR(addr uint16, value uint8) {
	switch m.Kind {
	case KindNROM:
		m.nromWriteCHR(addr, value)
	case KindMMC1:
		m.mmc1WriteCHR(addr, value)
	}
}

// Mirroring reports the mapper's current nametable mirroring mode.
func (m *Mapper) Mirroring() Mirroring {
	switch m.Kind {
	case KindMMC1:
		return m.mmc1Mirroring()
	default:
		return m.fixedMirroring
	}
}
