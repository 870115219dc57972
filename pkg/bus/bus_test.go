package bus

import "testing"

type fakePPU struct {
	oam        [256]uint8
	oamAddr    uint8
	registers  [8]uint8
}

func (f *fakePPU) ReadRegister(addr uint16) uint8 { return f.registers[addr&0x07] }
func (f *fakePPU) WriteRegister(addr uint16, value uint8) {
	f.registers[addr&0x07] = value
}
func (f *fakePPU) WriteOAMByte(value uint8) {
	f.oam[f.oamAddr] = value
	f.oamAddr++
}

func TestRAMMirroring(t *testing.T) {
	b := New()
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Errorf("expected RAM mirrored at $0800, got %02X", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Errorf("expected RAM mirrored at $1800, got %02X", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := New()
	ppu := &fakePPU{}
	b.SetPPU(ppu)

	b.Write(0x2000, 0x11)
	b.Write(0x2008, 0x22) // mirrors $2000

	if ppu.registers[0] != 0x22 {
		t.Errorf("expected mirrored write to land on register 0, got %02X", ppu.registers[0])
	}
}

func TestOAMDMACopiesPageAndStalls(t *testing.T) {
	b := New()
	ppu := &fakePPU{}
	b.SetPPU(ppu)
	b.Write(0x0200, 0xAA)
	b.Write(0x0201, 0xBB)

	b.Write(0x4014, 0x02) // DMA from page 2 ($0200-$02FF)

	if ppu.oam[0] != 0xAA || ppu.oam[1] != 0xBB {
		t.Errorf("expected OAM to receive the DMA'd page, got %02X %02X", ppu.oam[0], ppu.oam[1])
	}

	stall := b.TakeDMAStall(false)
	if stall != 513 {
		t.Errorf("expected 513-cycle stall on an even start cycle, got %d", stall)
	}
	if b.TakeDMAStall(false) != 0 {
		t.Error("expected stall to be consumed only once")
	}
}

func TestOAMDMAOddCycleStallsOneExtra(t *testing.T) {
	b := New()
	b.SetPPU(&fakePPU{})
	b.Write(0x4014, 0x00)

	if stall := b.TakeDMAStall(true); stall != 514 {
		t.Errorf("expected 514-cycle stall starting on an odd CPU cycle, got %d", stall)
	}
}

func TestController2RegisterReadsZero(t *testing.T) {
	b := New()
	if got := b.Read(0x4017); got != 0 {
		t.Errorf("expected unimplemented $4017 to read 0, got %02X", got)
	}
}
