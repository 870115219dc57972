// Package core wires the CPU, PPU, bus, cartridge, and controller into the
// single orchestrator external callers drive: load a ROM, reset, step a
// frame, feed controller input, and read back the framebuffer.
package core

import (
	"bytes"

	"github.com/brannigan-dev/nescore/pkg/bus"
	"github.com/brannigan-dev/nescore/pkg/cartridge"
	"github.com/brannigan-dev/nescore/pkg/cpu"
	"github.com/brannigan-dev/nescore/pkg/input"
	"github.com/brannigan-dev/nescore/pkg/logger"
	"github.com/brannigan-dev/nescore/pkg/ppu"
)

// cyclesPerFrame is the CPU cycle budget of one NTSC frame: 262 scanlines
// x 341 PPU dots, 3 PPU dots per CPU cycle, minus the short pre-render
// line on odd frames (handled inside the PPU itself, not here).
const cyclesPerFrame = 29781

// Core is the externally-facing emulator instance.
type Core struct {
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	Bus   *bus.Bus
	Input *input.Controller

	cart *cartridge.Cartridge

	totalCycles uint64
}

// New constructs a Core with no ROM loaded. Reset and StepFrame are both
// safe to call immediately: StepFrame on a cartridge-less Core just
// produces a blank frame instead of touching a nil pointer.
func New() *Core {
	c := &Core{
		Bus:   bus.New(),
		PPU:   ppu.New(),
		Input: input.New(),
	}
	c.Bus.SetInput(c.Input)
	c.Bus.SetPPU(c.PPU)
	c.CPU = cpu.New(c.Bus)
	return c
}

// LoadRom parses an iNES image and attaches its cartridge to the bus and
// PPU, replacing whatever was loaded before.
func (c *Core) LoadRom(data []uint8) error {
	cart, err := cartridge.Load(bytes.NewReader(data))
	if err != nil {
		return err
	}
	c.cart = cart
	c.Bus.SetCartridge(cart.Mapper)
	c.PPU.SetCartridge(cart.Mapper)
	c.Reset()
	return nil
}

// Reset restores CPU and PPU power-up/reset state.
func (c *Core) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.totalCycles = 0
}

// SetController replaces the held-button state for controller 1.
func (c *Core) SetController(buttons uint8) {
	c.Input.SetController(buttons)
}

// Framebuffer returns the most recently completed frame as packed
// RGBA8888 bytes, 256x240.
func (c *Core) Framebuffer() []uint8 {
	return c.PPU.Framebuffer()
}

// StepFrame runs the CPU/PPU/DMA pipeline until one NTSC frame's worth of
// CPU cycles has elapsed, driving the PPU at its fixed 3:1 dot ratio and
// servicing NMI/DMA along the way.
func (c *Core) StepFrame() {
	var frameCycles uint64
	for frameCycles < cyclesPerFrame {
		cpuCycleWasOdd := c.totalCycles%2 != 0

		cycles := c.CPU.Step()
		if stall := c.Bus.TakeDMAStall(cpuCycleWasOdd); stall > 0 {
			cycles += stall
		}
		if cycles == 0 {
			cycles = 1 // a halted CPU still lets the PPU run
		}

		for i := 0; i < cycles*3; i++ {
			c.PPU.Step()
			if c.PPU.ConsumeNMI() {
				c.CPU.TriggerNMI()
			}
		}

		c.totalCycles += uint64(cycles)
		frameCycles += uint64(cycles)
	}
	logger.LogCPU("frame %d complete after %d cycles", c.PPU.Frame, frameCycles)
}
