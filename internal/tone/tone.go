// Package tone defines the trigger used to announce a finished session.
package tone

// Player triggers a notification sound. Implementations must not block.
type Player interface {
	Play() error
}

// Nop is used when sound is disabled.
type Nop struct{}

func (Nop) Play() error { return nil }
