package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("New frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("Has(ActionLeft) should be true after Set")
	}
	if f.Has(ActionRight) {
		t.Error("Has(ActionRight) should be false")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Frame should be empty after Clear")
	}

	// Zero value frame must be usable
	var z InputFrame
	if z.Has(ActionUp) {
		t.Error("Zero frame should have no actions")
	}
	z.Set(ActionUp)
	if !z.Has(ActionUp) {
		t.Error("Set on zero frame should work")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Bright_Red")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c != ColorBrightRed {
		t.Errorf("ParseColor(Bright_Red) = %d, expected %d", c, ColorBrightRed)
	}

	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("ParseColor should reject unknown names")
	}
}
