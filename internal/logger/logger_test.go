package logger

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	log := New("debug")
	if log == nil {
		t.Fatal("New() returned nil")
	}

	impl, ok := log.(*implLogger)
	if !ok {
		t.Fatal("New() did not return *implLogger")
	}
	if impl.level != LevelDebug {
		t.Errorf("level = %v, want %v", impl.level, LevelDebug)
	}
}
