package input

import "testing"

func TestShiftOutButtonsInOrder(t *testing.T) {
	c := New()
	c.SetController(ButtonA | ButtonStart)
	c.Write(1) // strobe high: latch reloads continuously
	c.Write(0) // strobe low: freeze and start shifting

	results := make([]uint8, 8)
	for i := range results {
		results[i] = c.Read()
	}

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0} // A, B, Select, Start, Up, Down, Left, Right
	for i, w := range want {
		if results[i] != w {
			t.Errorf("bit %d: expected %d, got %d", i, w, results[i])
		}
	}
}

func TestStrobeHighAlwaysReturnsA(t *testing.T) {
	c := New()
	c.SetController(ButtonA)
	c.Write(1)

	if c.Read() != 1 {
		t.Error("expected A button bit while strobe held high")
	}
	if c.Read() != 1 {
		t.Error("expected repeated reads under strobe to keep returning A, not advance")
	}
}

func TestReadPastEighthBitReturnsOnes(t *testing.T) {
	c := New()
	c.SetController(0)
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if c.Read() != 1 {
		t.Error("expected open-bus 1s after the 8 reported buttons")
	}
}
