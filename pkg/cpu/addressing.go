package cpu

// AddressingMode identifies how an instruction's operand address is
// computed.
type AddressingMode int

const (
	ModeImplied AddressingMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX // (zp,X)
	ModeIndirectY // (zp),Y
	ModeRelative
)

// accessKind distinguishes how the resolved address will be used, since
// real 6502 hardware only pays (and only needs) the page-crossing dummy
// read for certain combinations of mode and access:
//   - read:  AbsoluteX/Y and IndirectY pay +1 cycle and perform a second,
//     corrected read only when indexing actually crosses a page.
//   - write: STA/STX/STY in an indexed mode always perform a fixed dummy
//     read from the uncorrected address, whether or not a page is
//     crossed, and the opcode table already bakes in that fixed cost.
//   - rmw: read-modify-write instructions behave like write: the extra
//     cycle is unconditional and already reflected in the opcode table.
type accessKind int

const (
	accessRead accessKind = iota
	accessWrite
	accessRMW
)

// resolveOperand computes the effective address for mode, advancing PC
// past any operand bytes and issuing whatever dummy bus reads real
// hardware performs along the way. It returns the address and whether a
// conditional (read-mode) cross-page penalty of 1 cycle applies.
func (c *CPU) resolveOperand(mode AddressingMode, kind accessKind) (addr uint16, extraCycle int) {
	switch mode {
	case ModeZeroPage:
		addr = uint16(c.read(c.PC))
		c.PC++
		return addr, 0

	case ModeZeroPageX:
		base := c.read(c.PC)
		c.PC++
		c.read(uint16(base)) // dummy read of unindexed zero page address
		return uint16(base + c.X), 0

	case ModeZeroPageY:
		base := c.read(c.PC)
		c.PC++
		c.read(uint16(base))
		return uint16(base + c.Y), 0

	case ModeAbsolute:
		addr = c.read16(c.PC)
		c.PC += 2
		return addr, 0

	case ModeAbsoluteX:
		return c.resolveIndexedAbsolute(c.X, kind)

	case ModeAbsoluteY:
		return c.resolveIndexedAbsolute(c.Y, kind)

	case ModeIndirectX:
		base := c.read(c.PC)
		c.PC++
		c.read(uint16(base)) // dummy read before the X-indexed wrap
		ptr := uint16(base + c.X)
		lo := uint16(c.read(ptr & 0x00FF))
		hi := uint16(c.read((ptr + 1) & 0x00FF))
		return hi<<8 | lo, 0

	case ModeIndirectY:
		zp := c.read(c.PC)
		c.PC++
		lo := uint16(c.read(uint16(zp)))
		hi := uint16(c.read(uint16(zp+1) & 0x00FF))
		base := hi<<8 | lo
		addr = base + uint16(c.Y)
		crossed := (base & 0xFF00) != (addr & 0xFF00)
		dummyAddr := (base & 0xFF00) | (addr & 0x00FF)
		switch kind {
		case accessRead:
			if crossed {
				c.read(dummyAddr)
				return addr, 1
			}
			return addr, 0
		default: // write, rmw
			c.read(dummyAddr)
			return addr, 0
		}

	case ModeRelative:
		offset := int8(c.read(c.PC))
		c.PC++
		return uint16(int32(c.PC) + int32(offset)), 0
	}

	return 0, 0
}

// resolveIndexedAbsolute handles ModeAbsoluteX/Y: base = word at PC,
// indexed by index.
func (c *CPU) resolveIndexedAbsolute(index uint8, kind accessKind) (addr uint16, extraCycle int) {
	base := c.read16(c.PC)
	c.PC += 2
	addr = base + uint16(index)
	crossed := (base & 0xFF00) != (addr & 0xFF00)
	dummyAddr := (base & 0xFF00) | (addr & 0x00FF)

	switch kind {
	case accessRead:
		if crossed {
			c.read(dummyAddr)
			return addr, 1
		}
		return addr, 0
	default: // write, rmw: unconditional fixed dummy read
		c.read(dummyAddr)
		return addr, 0
	}
}

// fetchOperand resolves mode and returns the operand byte for read-type
// instructions (ADC, AND, CMP, LDA, ...), plus any conditional
// page-crossing penalty.
func (c *CPU) fetchOperand(mode AddressingMode) (value uint8, extraCycle int) {
	if mode == ModeImmediate {
		v := c.read(c.PC)
		c.PC++
		return v, 0
	}
	if mode == ModeAccumulator {
		return c.A, 0
	}
	addr, extra := c.resolveOperand(mode, accessRead)
	return c.read(addr), extra
}

// indirectJumpTarget implements JMP (indirect)'s page-wrap bug: if the
// pointer's low byte is 0xFF, the high byte is fetched from the start of
// the same page rather than the next one.
func (c *CPU) indirectJumpTarget() uint16 {
	ptr := c.read16(c.PC)
	c.PC += 2
	return c.read16bug(ptr)
}
