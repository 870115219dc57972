// Package cartridge parses iNES ROM images and builds the mapper that
// serves PRG/CHR accesses for the cartridge they describe.
package cartridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/brannigan-dev/nescore/pkg/cartridge/mapper"
	"github.com/brannigan-dev/nescore/pkg/logger"
)

// ErrInvalidROM is returned when the input is not a well-formed iNES file.
var ErrInvalidROM = errors.New("cartridge: invalid iNES ROM")

// ErrUnsupportedMapper is returned when the ROM declares a mapper number
// this core does not implement.
var ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")

const (
	prgBankSize = 16384
	chrBankSize = 8192
)

type header struct {
	magic      [4]uint8
	prgROMSize uint8
	chrROMSize uint8
	flags6     uint8
	flags7     uint8
}

// Cartridge owns a ROM's PRG/CHR images and the mapper built over them.
type Cartridge struct {
	Mapper *mapper.Mapper
}

// Load parses an iNES image and constructs the appropriate mapper.
func Load(reader io.Reader) (*Cartridge, error) {
	var h header
	buf := make([]uint8, 16)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidROM, err)
	}
	copy(h.magic[:], buf[0:4])
	h.prgROMSize = buf[4]
	h.chrROMSize = buf[5]
	h.flags6 = buf[6]
	h.flags7 = buf[7]

	if string(h.magic[:]) != "NES\x1A" {
		return nil, fmt.Errorf("%w: bad magic number", ErrInvalidROM)
	}

	if h.flags6&0x04 != 0 { // trainer present, unused but must be skipped
		trainer := make([]uint8, 512)
		if _, err := io.ReadFull(reader, trainer); err != nil {
			return nil, fmt.Errorf("%w: reading trainer: %v", ErrInvalidROM, err)
		}
	}

	prgROM := make([]uint8, int(h.prgROMSize)*prgBankSize)
	if _, err := io.ReadFull(reader, prgROM); err != nil {
		return nil, fmt.Errorf("%w: reading PRG ROM: %v", ErrInvalidROM, err)
	}

	var chrROM, chrRAM []uint8
	if h.chrROMSize > 0 {
		chrROM = make([]uint8, int(h.chrROMSize)*chrBankSize)
		if _, err := io.ReadFull(reader, chrROM); err != nil {
			return nil, fmt.Errorf("%w: reading CHR ROM: %v", ErrInvalidROM, err)
		}
	} else {
		chrRAM = make([]uint8, chrBankSize)
	}

	var prgRAM []uint8
	if h.flags6&0x02 != 0 { // battery-backed PRG RAM
		prgRAM = make([]uint8, 8192)
	} else {
		prgRAM = make([]uint8, 8192) // work RAM at $6000-$7FFF regardless
	}

	mirror := mapper.MirrorHorizontal
	switch {
	case h.flags6&0x08 != 0:
		mirror = mapper.MirrorFourScreen
	case h.flags6&0x01 != 0:
		mirror = mapper.MirrorVertical
	}

	mapperNumber := (h.flags6 >> 4) | (h.flags7 & 0xF0)
	var kind mapper.Kind
	switch mapperNumber {
	case 0:
		kind = mapper.KindNROM
	case 1:
		kind = mapper.KindMMC1
	default:
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, mapperNumber)
	}

	m, err := mapper.New(kind, prgROM, chrROM, chrRAM, prgRAM, mirror)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMapper, err)
	}

	logger.LogInfo("cartridge: mapper=%d PRG=%dKB CHR=%dKB mirroring=%v",
		mapperNumber, len(prgROM)/1024, (len(chrROM)+len(chrRAM))/1024, m.Mirroring())

	return &Cartridge{Mapper: m}, nil
}
