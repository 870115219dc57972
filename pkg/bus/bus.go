// Package bus implements the NES's 64KiB CPU address space: work RAM,
// PPU register mirroring, APU/IO register space, controller I/O, and
// OAM DMA, wired to whichever cartridge and PPU the core attaches.
package bus

import "github.com/brannigan-dev/nescore/pkg/logger"

// PPU is the subset of ppu.PPU the bus talks to.
type PPU interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
	WriteOAMByte(value uint8)
}

// Cartridge is the subset of mapper.Mapper the bus talks to.
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

// Input is the subset of input.Controller the bus talks to.
type Input interface {
	Read() uint8
	Write(value uint8)
}

// Bus is the CPU's view of the NES address space.
type Bus struct {
	ram [0x0800]uint8

	PPU       PPU
	Cartridge Cartridge
	Input     Input

	// dmaStall is the number of extra CPU cycles TakeDMAStall reports still
	// owed from an in-progress OAM DMA transfer (spec: 513 cycles, 514 if
	// the transfer starts on an odd CPU cycle).
	dmaStall int
}

// New creates a Bus with no cartridge or PPU attached; Read/Write are safe
// to call before one is (they simply see an empty address space), matching
// a Core constructed before LoadRom.
func New() *Bus { return &Bus{} }

// SetPPU attaches the PPU the bus mirrors $2000-$3FFF to and DMAs into.
func (b *Bus) SetPPU(ppu PPU) { b.PPU = ppu }

// SetCartridge attaches the mapper the bus routes $6000-$FFFF through.
func (b *Bus) SetCartridge(cart Cartridge) { b.Cartridge = cart }

// SetInput attaches the controller the bus routes $4016 through.
func (b *Bus) SetInput(in Input) { b.Input = in }

// Read returns the byte at addr, per the NES CPU memory map.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		if b.PPU != nil {
			return b.PPU.ReadRegister(0x2000 + (addr & 0x07))
		}
		return 0
	case addr == 0x4016:
		if b.Input != nil {
			return b.Input.Read()
		}
		return 0
	case addr == 0x4017:
		return 0 // controller 2 / APU frame register: unimplemented, reads back 0
	case addr < 0x4020:
		return 0 // APU registers: out of scope
	case b.Cartridge != nil:
		return b.Cartridge.ReadPRG(addr)
	default:
		return 0
	}
}

// Write stores value at addr, per the NES CPU memory map.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = value
	case addr < 0x4000:
		if b.PPU != nil {
			b.PPU.WriteRegister(0x2000+(addr&0x07), value)
		}
	case addr == 0x4014:
		b.startOAMDMA(value)
	case addr == 0x4016:
		if b.Input != nil {
			b.Input.Write(value)
		}
	case addr < 0x4020:
		// APU registers: out of scope
	case b.Cartridge != nil:
		b.Cartridge.WritePRG(addr, value)
	}
}

// startOAMDMA copies the 256-byte page starting at page<<8 into OAM and
// schedules the CPU stall real hardware incurs: 513 cycles, or 514 when
// the write lands on an odd CPU cycle (the parity is reported by the caller
// via TakeDMAStall's cpuCycleWasOdd argument at the point DMA is consumed).
func (b *Bus) startOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		value := b.Read(base + uint16(i))
		if b.PPU != nil {
			b.PPU.WriteOAMByte(value)
		}
	}
	b.dmaStall = 513
	logger.LogBus("OAM DMA from page $%02X, stalling CPU %d cycles", page, b.dmaStall)
}

// TakeDMAStall returns and clears the number of extra CPU cycles owed from
// a completed OAM DMA transfer, adding one more if it started on an odd
// CPU cycle (the well-documented 513-vs-514 asymmetry).
func (b *Bus) TakeDMAStall(cpuCycleWasOdd bool) int {
	if b.dmaStall == 0 {
		return 0
	}
	stall := b.dmaStall
	if cpuCycleWasOdd {
		stall++
	}
	b.dmaStall = 0
	return stall
}
