package speech

import (
	"testing"

	"go.uber.org/zap"
)

func TestAvailable(t *testing.T) {
	tests := []struct {
		name   string
		binary string
		want   bool
	}{
		{name: "binary on path", binary: "sh", want: true},
		{name: "binary missing", binary: "definitely-not-a-speech-engine", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(tt.binary, zap.NewNop())
			if got := engine.Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpeakMissingBinaryDoesNotPanic(t *testing.T) {
	engine := New("definitely-not-a-speech-engine", zap.NewNop())
	engine.Speak("hello")
	engine.Stop()
}

func TestSpeakAndStop(t *testing.T) {
	// cat consumes the say-command from stdin and exits; Stop on an
	// already-finished process must be harmless.
	engine := New("cat", zap.NewNop())
	engine.Speak("hello")
	engine.Speak("world")
	engine.Stop()
	engine.Stop()
}
