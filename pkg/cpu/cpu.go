// Package cpu implements a cycle-accurate MOS 6502 interpreter, including
// the documented instruction set and the undocumented opcodes commonly
// exercised by test ROMs.
package cpu

import (
	"github.com/brannigan-dev/nescore/pkg/logger"
)

// Bus is the memory interface the CPU drives. It is satisfied by
// pkg/bus.Bus; the interface here keeps the cpu package free of an
// import cycle back to bus.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Status flag bits.
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D (present but inert on the NES 2A03)
	FlagBreak     = 1 << 4 // B
	FlagUnused    = 1 << 5 // U, always 1 when pushed
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

// CPU represents the 6502 processor.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  uint8

	Bus Bus

	// Cycles is the running total of bus cycles consumed since Reset.
	Cycles uint64

	// NMI and IRQ are edge/level interrupt lines sampled at instruction
	// boundaries. NMI is cleared by the CPU the instant it is serviced;
	// IRQ stays asserted until the device that raised it clears it.
	NMI bool
	IRQ bool

	// Halted is set by an undocumented JAM/KIL opcode (spec: "halt").
	// The CPU keeps returning 0 cycles from Step once set; the PPU and
	// rest of the system keep running.
	Halted     bool
	HaltOpcode uint8
	HaltPC     uint16
}

// New creates a new CPU instance wired to bus.
func New(bus Bus) *CPU {
	c := &CPU{Bus: bus}
	c.Reset()
	return c
}

// Reset restores power-up/reset register state and loads PC from the
// reset vector at 0xFFFC. reset() is idempotent: calling it twice in a
// row produces identical register state both times.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.PC = c.read16(0xFFFC)
	c.Cycles = 0
	c.NMI = false
	c.IRQ = false
	c.Halted = false
}

// Step services a pending interrupt or executes one instruction, and
// returns the number of bus cycles the event consumed.
func (c *CPU) Step() int {
	if c.Halted {
		return 0
	}

	if c.NMI {
		c.NMI = false
		c.serviceInterrupt(0xFFFA, false)
		c.Cycles += 7
		logger.LogCPU("NMI serviced, PC=$%04X", c.PC)
		return 7
	}

	if c.IRQ && !c.getFlag(FlagInterrupt) {
		c.serviceInterrupt(0xFFFE, false)
		c.Cycles += 7
		logger.LogCPU("IRQ serviced, PC=$%04X", c.PC)
		return 7
	}

	opcode := c.read(c.PC)
	pc := c.PC
	c.PC++

	entry := &opcodeTable[opcode]
	if entry.illegalHalt {
		logger.LogError("halt opcode $%02X at PC=$%04X", opcode, pc)
		c.Halted = true
		c.HaltOpcode = opcode
		c.HaltPC = pc
		return 0
	}

	cycles := entry.exec(c, entry.mode, entry.cycles)
	c.Cycles += uint64(cycles)
	return cycles
}

// serviceInterrupt pushes PC and P (with the given break flag) and jumps
// through vector. Software BRK pushes PC+1 with B=1; NMI/IRQ push the
// unmodified PC with B=0.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) {
	c.push16(c.PC)
	p := c.P | FlagUnused
	if brk {
		p |= FlagBreak
	} else {
		p &^= FlagBreak
	}
	c.push(p)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vector)
}

// TriggerNMI raises the edge-triggered NMI line.
func (c *CPU) TriggerNMI() { c.NMI = true }

// TriggerIRQ raises the level-triggered IRQ line. It is idempotent;
// whoever raised it is responsible for clearing it once serviced.
func (c *CPU) TriggerIRQ() { c.IRQ = true }

// ClearIRQ lowers the IRQ line.
func (c *CPU) ClearIRQ() { c.IRQ = false }

func (c *CPU) getFlag(flag uint8) bool { return c.P&flag != 0 }

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

// GetFlag exposes flag state for tests and debuggers.
func (c *CPU) GetFlag(flag uint8) bool { return c.getFlag(flag) }

func (c *CPU) read(addr uint16) uint8         { return c.Bus.Read(addr) }
func (c *CPU) write(addr uint16, value uint8) { c.Bus.Write(addr, value) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// read16bug reproduces the indirect-addressing page-wrap bug: the high
// byte is fetched from (addr & 0xFF00)|((addr+1)&0xFF) rather than
// addr+1, so a pointer ending in 0xFF does not cross into the next page.
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}

func (c *CPU) push(value uint8) {
	c.write(0x0100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(0x0100 | uint16(c.SP))
}

func (c *CPU) push16(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}
