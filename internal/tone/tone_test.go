package tone

import "testing"

func TestNopPlay(t *testing.T) {
	if err := (Nop{}).Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
