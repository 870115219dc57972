package core

import "testing"

// buildNROM builds a minimal one-bank NROM iNES image whose reset vector
// points at the start of PRG ROM, which is filled with NOPs.
func buildNROM(program []uint8) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 0x4000)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	copy(prg, program)
	prg[0x3FFC] = 0x00 // reset vector low -> $8000
	prg[0x3FFD] = 0x80 // reset vector high
	chr := make([]byte, 0x2000)

	out := append([]byte{}, header...)
	out = append(out, prg...)
	out = append(out, chr...)
	return out
}

func TestCoreSafeBeforeLoadRom(t *testing.T) {
	c := New()
	c.Reset()
	c.StepFrame()

	fb := c.Framebuffer()
	if len(fb) != 256*240*4 {
		t.Fatalf("expected a full-size framebuffer even with no cartridge, got %d bytes", len(fb))
	}
}

func TestLoadRomThenStepFrameAdvancesFrameCounter(t *testing.T) {
	c := New()
	if err := c.LoadRom(buildNROM(nil)); err != nil {
		t.Fatalf("unexpected LoadRom error: %v", err)
	}

	before := c.PPU.Frame
	c.StepFrame()
	after := c.PPU.Frame

	if after == before {
		t.Error("expected frame counter to advance after StepFrame")
	}
}

func TestLoadRomRejectsGarbage(t *testing.T) {
	c := New()
	err := c.LoadRom([]byte{0, 1, 2, 3})
	if err == nil {
		t.Fatal("expected an error loading a non-iNES image")
	}
}

func TestSetControllerReachesInputLatch(t *testing.T) {
	c := New()
	c.SetController(0x01)

	c.Input.Write(1)
	c.Input.Write(0)
	if got := c.Bus.Read(0x4016); got&1 != 1 {
		t.Errorf("expected controller A button bit visible via bus read, got %d", got)
	}
}

func TestResetIsIdempotentBeforeLoad(t *testing.T) {
	c := New()
	c.Reset()
	c.Reset()
	// must not panic; PC should be deterministic (reset vector reads 0 with
	// no cartridge attached).
	if c.CPU.PC != 0 {
		t.Errorf("expected PC=0 reading an empty bus reset vector, got %04X", c.CPU.PC)
	}
}
