package cpu

// execFunc executes one instruction body. base is the opcode's
// documented non-crossing cycle count; the function returns the actual
// total cycle count for this execution (base plus any conditional
// penalty the addressing mode or a taken branch adds).
type execFunc func(c *CPU, mode AddressingMode, base int) int

// --- Loads ---

func execLDA(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.A = v
	c.setZN(c.A)
	return base + extra
}

func execLDX(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.X = v
	c.setZN(c.X)
	return base + extra
}

func execLDY(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.Y = v
	c.setZN(c.Y)
	return base + extra
}

// LAX: undocumented LDA+LDX combined load.
func execLAX(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.A = v
	c.X = v
	c.setZN(v)
	return base + extra
}

// --- Stores ---

func execSTA(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessWrite)
	c.write(addr, c.A)
	return base
}

func execSTX(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessWrite)
	c.write(addr, c.X)
	return base
}

func execSTY(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessWrite)
	c.write(addr, c.Y)
	return base
}

// SAX: undocumented store of A&X.
func execSAX(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessWrite)
	c.write(addr, c.A&c.X)
	return base
}

// --- Transfers ---

func execTAX(c *CPU, mode AddressingMode, base int) int { c.X = c.A; c.setZN(c.X); return base }
func execTXA(c *CPU, mode AddressingMode, base int) int { c.A = c.X; c.setZN(c.A); return base }
func execTAY(c *CPU, mode AddressingMode, base int) int { c.Y = c.A; c.setZN(c.Y); return base }
func execTYA(c *CPU, mode AddressingMode, base int) int { c.A = c.Y; c.setZN(c.A); return base }
func execTXS(c *CPU, mode AddressingMode, base int) int { c.SP = c.X; return base }
func execTSX(c *CPU, mode AddressingMode, base int) int { c.X = c.SP; c.setZN(c.X); return base }

// --- Flags ---

func execCLC(c *CPU, mode AddressingMode, base int) int { c.setFlag(FlagCarry, false); return base }
func execSEC(c *CPU, mode AddressingMode, base int) int { c.setFlag(FlagCarry, true); return base }
func execCLI(c *CPU, mode AddressingMode, base int) int {
	c.setFlag(FlagInterrupt, false)
	return base
}
func execSEI(c *CPU, mode AddressingMode, base int) int {
	c.setFlag(FlagInterrupt, true)
	return base
}
func execCLV(c *CPU, mode AddressingMode, base int) int { c.setFlag(FlagOverflow, false); return base }
func execCLD(c *CPU, mode AddressingMode, base int) int { c.setFlag(FlagDecimal, false); return base }
func execSED(c *CPU, mode AddressingMode, base int) int { c.setFlag(FlagDecimal, true); return base }

// --- Stack ---

func execPHA(c *CPU, mode AddressingMode, base int) int { c.push(c.A); return base }
func execPHP(c *CPU, mode AddressingMode, base int) int {
	c.push(c.P | FlagBreak | FlagUnused)
	return base
}
func execPLA(c *CPU, mode AddressingMode, base int) int {
	c.A = c.pop()
	c.setZN(c.A)
	return base
}
func execPLP(c *CPU, mode AddressingMode, base int) int {
	c.P = (c.pop() &^ FlagBreak) | FlagUnused
	return base
}

// --- Logical / arithmetic ---

func execAND(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.A &= v
	c.setZN(c.A)
	return base + extra
}

func execORA(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.A |= v
	c.setZN(c.A)
	return base + extra
}

func execEOR(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.A ^= v
	c.setZN(c.A)
	return base + extra
}

func execBIT(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&0x40 != 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
	return base + extra
}

func (c *CPU) adc(v uint8) {
	carry := uint16(0)
	if c.getFlag(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (^(c.A^v))&(c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func execADC(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.adc(v)
	return base + extra
}

func execSBC(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.adc(^v)
	return base + extra
}

func (c *CPU) compare(reg, v uint8) {
	diff := reg - v
	c.setFlag(FlagCarry, reg >= v)
	c.setFlag(FlagZero, reg == v)
	c.setFlag(FlagNegative, diff&0x80 != 0)
}

func execCMP(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.compare(c.A, v)
	return base + extra
}

func execCPX(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.compare(c.X, v)
	return base + extra
}

func execCPY(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	c.compare(c.Y, v)
	return base + extra
}

// --- Increment / decrement ---

func execINX(c *CPU, mode AddressingMode, base int) int { c.X++; c.setZN(c.X); return base }
func execINY(c *CPU, mode AddressingMode, base int) int { c.Y++; c.setZN(c.Y); return base }
func execDEX(c *CPU, mode AddressingMode, base int) int { c.X--; c.setZN(c.X); return base }
func execDEY(c *CPU, mode AddressingMode, base int) int { c.Y--; c.setZN(c.Y); return base }

func execINC(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v) // dummy write-back of the unmodified value
	v++
	c.write(addr, v)
	c.setZN(v)
	return base
}

func execDEC(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	v--
	c.write(addr, v)
	c.setZN(v)
	return base
}

// --- Shifts / rotates ---

func execASL(c *CPU, mode AddressingMode, base int) int {
	if mode == ModeAccumulator {
		c.setFlag(FlagCarry, c.A&0x80 != 0)
		c.A <<= 1
		c.setZN(c.A)
		return base
	}
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.write(addr, v)
	c.setZN(v)
	return base
}

func execLSR(c *CPU, mode AddressingMode, base int) int {
	if mode == ModeAccumulator {
		c.setFlag(FlagCarry, c.A&0x01 != 0)
		c.A >>= 1
		c.setZN(c.A)
		return base
	}
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.write(addr, v)
	c.setZN(v)
	return base
}

func execROL(c *CPU, mode AddressingMode, base int) int {
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	if mode == ModeAccumulator {
		c.setFlag(FlagCarry, c.A&0x80 != 0)
		c.A = (c.A << 1) | carryIn
		c.setZN(c.A)
		return base
	}
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.write(addr, v)
	c.setZN(v)
	return base
}

func execROR(c *CPU, mode AddressingMode, base int) int {
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 0x80
	}
	if mode == ModeAccumulator {
		c.setFlag(FlagCarry, c.A&0x01 != 0)
		c.A = (c.A >> 1) | carryIn
		c.setZN(c.A)
		return base
	}
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.write(addr, v)
	c.setZN(v)
	return base
}

// --- Undocumented read-modify-write combos ---

func execSLO(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.write(addr, v)
	c.A |= v
	c.setZN(c.A)
	return base
}

func execRLA(c *CPU, mode AddressingMode, base int) int {
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.write(addr, v)
	c.A &= v
	c.setZN(c.A)
	return base
}

func execSRE(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.write(addr, v)
	c.A ^= v
	c.setZN(c.A)
	return base
}

func execRRA(c *CPU, mode AddressingMode, base int) int {
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 0x80
	}
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.write(addr, v)
	c.adc(v)
	return base
}

func execDCP(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	v--
	c.write(addr, v)
	c.compare(c.A, v)
	return base
}

func execISB(c *CPU, mode AddressingMode, base int) int {
	addr, _ := c.resolveOperand(mode, accessRMW)
	v := c.read(addr)
	c.write(addr, v)
	v++
	c.write(addr, v)
	c.adc(^v)
	return base
}

// --- Jumps / subroutine calls ---

func execJMPAbsolute(c *CPU, mode AddressingMode, base int) int {
	c.PC = c.read16(c.PC)
	return base
}

func execJMPIndirect(c *CPU, mode AddressingMode, base int) int {
	c.PC = c.indirectJumpTarget()
	return base
}

func execJSR(c *CPU, mode AddressingMode, base int) int {
	target := c.read16(c.PC)
	// real hardware reads the low byte, pushes PC+1 (pointing at the high
	// byte of the operand), then reads the high byte
	c.push16(c.PC + 1)
	c.PC = target
	return base
}

func execRTS(c *CPU, mode AddressingMode, base int) int {
	c.PC = c.pop16() + 1
	return base
}

func execRTI(c *CPU, mode AddressingMode, base int) int {
	c.P = (c.pop() &^ FlagBreak) | FlagUnused
	c.PC = c.pop16()
	return base
}

func execBRK(c *CPU, mode AddressingMode, base int) int {
	c.PC++ // BRK's operand byte is skipped (a padding byte)
	c.serviceInterrupt(0xFFFE, true)
	return base
}

// --- Branches ---

func (c *CPU) branch(taken bool, base int) int {
	target, _ := c.resolveOperand(ModeRelative, accessRead)
	if !taken {
		return base
	}
	crossed := (c.PC & 0xFF00) != (target & 0xFF00)
	c.PC = target
	if crossed {
		return base + 2
	}
	return base + 1
}

func execBPL(c *CPU, mode AddressingMode, base int) int { return c.branch(!c.getFlag(FlagNegative), base) }
func execBMI(c *CPU, mode AddressingMode, base int) int { return c.branch(c.getFlag(FlagNegative), base) }
func execBVC(c *CPU, mode AddressingMode, base int) int { return c.branch(!c.getFlag(FlagOverflow), base) }
func execBVS(c *CPU, mode AddressingMode, base int) int { return c.branch(c.getFlag(FlagOverflow), base) }
func execBCC(c *CPU, mode AddressingMode, base int) int { return c.branch(!c.getFlag(FlagCarry), base) }
func execBCS(c *CPU, mode AddressingMode, base int) int { return c.branch(c.getFlag(FlagCarry), base) }
func execBNE(c *CPU, mode AddressingMode, base int) int { return c.branch(!c.getFlag(FlagZero), base) }
func execBEQ(c *CPU, mode AddressingMode, base int) int { return c.branch(c.getFlag(FlagZero), base) }

// --- Remaining unofficial combined opcodes ---

func execANC(c *CPU, mode AddressingMode, base int) int {
	v, _ := c.fetchOperand(mode)
	c.A &= v
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x80 != 0)
	return base
}

func execALR(c *CPU, mode AddressingMode, base int) int {
	v, _ := c.fetchOperand(mode)
	c.A &= v
	c.setFlag(FlagCarry, c.A&0x01 != 0)
	c.A >>= 1
	c.setZN(c.A)
	return base
}

func execARR(c *CPU, mode AddressingMode, base int) int {
	v, _ := c.fetchOperand(mode)
	c.A &= v
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 0x80
	}
	c.A = (c.A >> 1) | carryIn
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x40 != 0)
	c.setFlag(FlagOverflow, (c.A>>6)&1^(c.A>>5)&1 != 0)
	return base
}

func execAXS(c *CPU, mode AddressingMode, base int) int {
	v, _ := c.fetchOperand(mode)
	result := (c.A & c.X) - v
	c.setFlag(FlagCarry, c.A&c.X >= v)
	c.X = result
	c.setZN(c.X)
	return base
}

func execLAS(c *CPU, mode AddressingMode, base int) int {
	v, extra := c.fetchOperand(mode)
	v &= c.SP
	c.A = v
	c.X = v
	c.SP = v
	c.setZN(v)
	return base + extra
}

// --- NOPs ---

func execNOP(c *CPU, mode AddressingMode, base int) int {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return base
	default:
		_, extra := c.fetchOperand(mode)
		return base + extra
	}
}
