package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium ||
		Long() != DefaultLong || Sweep() != DefaultSweep {
		t.Error("defaults not in effect after Reset")
	}
}

func TestConfigureOverrides(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: time.Second, Sweep: time.Hour})

	if Short() != time.Second {
		t.Errorf("Short: got %v", Short())
	}
	if Sweep() != time.Hour {
		t.Errorf("Sweep: got %v", Sweep())
	}
	// Unset fields keep their defaults.
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v", Medium())
	}
}
