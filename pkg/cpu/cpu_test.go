package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testBus is a flat 64KiB RAM used as the CPU's bus in isolation tests.
type testBus struct {
	mem [65536]uint8
}

func (b *testBus) Read(addr uint16) uint8         { return b.mem[addr] }
func (b *testBus) Write(addr uint16, value uint8) { b.mem[addr] = value }

func newTestCPU() (*CPU, *testBus) {
	bus := &testBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x02
	c := New(bus)
	return c, bus
}

func TestResetVector(t *testing.T) {
	c, _ := newTestCPU()
	assert.Equal(t, uint16(0x0200), c.PC, "PC after reset")
	assert.Equal(t, uint8(0xFD), c.SP, "SP after reset")
	assert.True(t, c.getFlag(FlagInterrupt), "interrupt-disable flag after reset")
}

func TestLDAImmediate(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0xA9
	bus.mem[0x0201] = 0x42

	cycles := c.Step()

	if c.A != 0x42 {
		t.Errorf("expected A=0x42, got %02X", c.A)
	}
	if cycles != 2 {
		t.Errorf("expected 2 cycles, got %d", cycles)
	}
	if c.getFlag(FlagZero) || c.getFlag(FlagNegative) {
		t.Error("unexpected flag set for positive nonzero load")
	}
}

func TestLDAZeroAndNegativeFlags(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0xA9
	bus.mem[0x0201] = 0x00
	c.Step()
	if !c.getFlag(FlagZero) {
		t.Error("expected zero flag set for LDA #0")
	}

	c, bus = newTestCPU()
	bus.mem[0x0200] = 0xA9
	bus.mem[0x0201] = 0x80
	c.Step()
	if !c.getFlag(FlagNegative) {
		t.Error("expected negative flag set for LDA #$80")
	}
}

func TestAbsoluteXPageCrossPenalty(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0xFF
	bus.mem[0x0200] = 0xBD // LDA abs,X
	bus.mem[0x0201] = 0x01
	bus.mem[0x0202] = 0x10 // base 0x1001, + 0xFF = 0x1100: page crossed
	bus.mem[0x1100] = 0x55

	cycles := c.Step()

	if c.A != 0x55 {
		t.Errorf("expected A=0x55, got %02X", c.A)
	}
	if cycles != 5 {
		t.Errorf("expected 5 cycles (4 base + 1 page-cross), got %d", cycles)
	}
}

func TestAbsoluteXNoPageCross(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0x01
	bus.mem[0x0200] = 0xBD
	bus.mem[0x0201] = 0x00
	bus.mem[0x0202] = 0x10
	bus.mem[0x1001] = 0x99

	cycles := c.Step()

	if cycles != 4 {
		t.Errorf("expected 4 cycles with no page cross, got %d", cycles)
	}
}

func TestSTAIndexedAlwaysPaysFixedCycle(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0xFF
	c.A = 0x77
	bus.mem[0x0200] = 0x9D // STA abs,X
	bus.mem[0x0201] = 0x01
	bus.mem[0x0202] = 0x10

	cycles := c.Step()

	if cycles != 5 {
		t.Errorf("expected STA abs,X to always cost 5 cycles, got %d", cycles)
	}
	if bus.mem[0x1100] != 0x77 {
		t.Errorf("expected store at 0x1100, got %02X", bus.mem[0x1100])
	}
}

func TestADCOverflowFlag(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x7F // +127
	bus.mem[0x0200] = 0x69 // ADC #
	bus.mem[0x0201] = 0x01

	c.Step()

	if c.A != 0x80 {
		t.Errorf("expected A=0x80, got %02X", c.A)
	}
	if !c.getFlag(FlagOverflow) {
		t.Error("expected overflow flag set for 127+1")
	}
	if !c.getFlag(FlagNegative) {
		t.Error("expected negative flag set for result 0x80")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x00
	c.setFlag(FlagCarry, true) // no borrow going in
	bus.mem[0x0200] = 0xE9 // SBC #
	bus.mem[0x0201] = 0x01

	c.Step()

	if c.A != 0xFF {
		t.Errorf("expected A=0xFF after 0-1, got %02X", c.A)
	}
	if c.getFlag(FlagCarry) {
		t.Error("expected carry clear (borrow occurred)")
	}
}

func TestBranchTakenCyclePenalty(t *testing.T) {
	c, bus := newTestCPU()
	c.setFlag(FlagZero, true)
	bus.mem[0x0200] = 0xF0 // BEQ
	bus.mem[0x0201] = 0x10 // +16, same page

	cycles := c.Step()

	if c.PC != 0x0212 {
		t.Errorf("expected PC=0x0212, got %04X", c.PC)
	}
	if cycles != 3 {
		t.Errorf("expected 3 cycles for taken branch same page, got %d", cycles)
	}
}

func TestBranchNotTaken(t *testing.T) {
	c, bus := newTestCPU()
	c.setFlag(FlagZero, false)
	bus.mem[0x0200] = 0xF0 // BEQ, Z clear -> not taken
	bus.mem[0x0201] = 0x10

	cycles := c.Step()

	if cycles != 2 {
		t.Errorf("expected 2 cycles for untaken branch, got %d", cycles)
	}
	if c.PC != 0x0202 {
		t.Errorf("expected PC to just advance past the branch, got %04X", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0x20 // JSR
	bus.mem[0x0201] = 0x00
	bus.mem[0x0202] = 0x03
	bus.mem[0x0300] = 0x60 // RTS

	c.Step() // JSR
	if c.PC != 0x0300 {
		t.Errorf("expected PC=0x0300 after JSR, got %04X", c.PC)
	}

	c.Step() // RTS
	if c.PC != 0x0203 {
		t.Errorf("expected PC=0x0203 after RTS, got %04X", c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0x6C // JMP (indirect)
	bus.mem[0x0201] = 0xFF
	bus.mem[0x0202] = 0x03 // pointer at 0x03FF, low byte 0xFF triggers the bug
	bus.mem[0x03FF] = 0x34 // target low byte
	bus.mem[0x0300] = 0x99 // buggy high-byte read wraps to 0x0300, not 0x0400
	bus.mem[0x0400] = 0x12 // correct (unbugged) high byte location; must be ignored

	c.PC = 0x0200
	c.Step()

	if c.PC != 0x9934 {
		t.Errorf("expected buggy wraparound target 0x9934, got %04X", c.PC)
	}
}

func TestBRKPushesReturnAddressPlusTwo(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x04
	bus.mem[0x0200] = 0x00 // BRK

	c.Step()

	if c.PC != 0x0400 {
		t.Errorf("expected PC to jump through IRQ/BRK vector, got %04X", c.PC)
	}
	if !c.getFlag(FlagInterrupt) {
		t.Error("expected interrupt-disable flag set by BRK")
	}
	pushedP := bus.mem[0x0100|uint16(c.SP+1)]
	if pushedP&FlagBreak == 0 {
		t.Error("expected break flag set in pushed status for software BRK")
	}
	retLo := uint16(bus.mem[0x0100|uint16(c.SP+2)])
	retHi := uint16(bus.mem[0x0100|uint16(c.SP+3)])
	if ret := retHi<<8 | retLo; ret != 0x0202 {
		t.Errorf("expected pushed return address 0x0202 (BRK at 0x0200 plus two), got %04X", ret)
	}
}

func TestNMIClearsAfterService(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x05
	bus.mem[0x0200] = 0xEA // NOP, shouldn't execute: NMI takes priority

	c.TriggerNMI()
	cycles := c.Step()

	if cycles != 7 {
		t.Errorf("expected 7 cycles for NMI service, got %d", cycles)
	}
	if c.NMI {
		t.Error("expected NMI line cleared after service")
	}
	if c.PC != 0x0500 {
		t.Errorf("expected PC at NMI vector, got %04X", c.PC)
	}
}

func TestIRQIgnoredWhenInterruptDisabled(t *testing.T) {
	c, bus := newTestCPU()
	c.setFlag(FlagInterrupt, true)
	bus.mem[0x0200] = 0xEA // NOP

	c.TriggerIRQ()
	cycles := c.Step()

	if cycles != 2 {
		t.Errorf("expected masked IRQ to fall through to NOP execution (2 cycles), got %d", cycles)
	}
}

func TestJAMOpcodeHalts(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0x02 // JAM

	cycles := c.Step()

	if cycles != 0 {
		t.Errorf("expected 0 cycles from a halt opcode, got %d", cycles)
	}
	if !c.Halted {
		t.Error("expected CPU to report halted after a JAM opcode")
	}
	if c.HaltOpcode != 0x02 {
		t.Errorf("expected recorded halt opcode 0x02, got %02X", c.HaltOpcode)
	}

	// further steps are no-ops
	cycles = c.Step()
	if cycles != 0 {
		t.Errorf("expected continued 0 cycles after halt, got %d", cycles)
	}
}

func TestLAXAbsolute(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0xAF // LAX abs
	bus.mem[0x0201] = 0x00
	bus.mem[0x0202] = 0x18
	bus.mem[0x1800] = 0x42

	cycles := c.Step()

	if c.A != 0x42 || c.X != 0x42 {
		t.Errorf("expected A=X=0x42, got A=%02X X=%02X", c.A, c.X)
	}
	if cycles != 4 {
		t.Errorf("expected 4 cycles for LAX abs, got %d", cycles)
	}
}

func TestSAXZeroPage(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0xFF
	c.X = 0x0F
	bus.mem[0x0200] = 0x87 // SAX zp
	bus.mem[0x0201] = 0x10

	cycles := c.Step()

	if bus.mem[0x10] != 0x0F {
		t.Errorf("expected SAX to store A&X=0x0F, got %02X", bus.mem[0x10])
	}
	if cycles != 3 {
		t.Errorf("expected 3 cycles for SAX zp, got %d", cycles)
	}
}

func TestDCPDecrementsAndCompares(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x10
	bus.mem[0x0200] = 0xC7 // DCP zp
	bus.mem[0x0201] = 0x20
	bus.mem[0x20] = 0x11

	c.Step()

	if bus.mem[0x20] != 0x10 {
		t.Errorf("expected memory decremented to 0x10, got %02X", bus.mem[0x20])
	}
	if !c.getFlag(FlagZero) {
		t.Error("expected zero flag set since A equals decremented memory")
	}
}

func TestIllegalNOPAdvancesPCWithoutSideEffects(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0200] = 0x04 // illegal NOP zp
	bus.mem[0x0201] = 0x99

	cycles := c.Step()

	if cycles != 3 {
		t.Errorf("expected 3 cycles for illegal zp NOP, got %d", cycles)
	}
	if c.PC != 0x0202 {
		t.Errorf("expected PC advanced past the operand byte, got %04X", c.PC)
	}
}
