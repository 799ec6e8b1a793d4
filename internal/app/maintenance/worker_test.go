package maintenance

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestWorker(t *testing.T, hour int, tz string) *Worker {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load location %q: %v", tz, err)
	}
	return NewWorker(nil, zap.NewNop(), hour, loc)
}

func TestNextFire(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		hour int
		tz   string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the hour fires today",
			hour: 9,
			tz:   "UTC",
			now:  time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC),
			want: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "after the hour fires tomorrow",
			hour: 9,
			tz:   "UTC",
			now:  time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
			want: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour fires tomorrow",
			hour: 9,
			tz:   "UTC",
			now:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight in a non-UTC zone",
			hour: 0,
			tz:   "Asia/Kolkata",
			// 20:00 UTC is 01:30 the next day in IST, so the fire is the
			// following IST midnight.
			now:  time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 12, 0, 0, 0, 0, ist),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorker(t, tt.hour, tt.tz)
			got := w.nextFire(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("nextFire(%v): got %v, want %v", tt.now, got, tt.want)
			}
			if !got.After(tt.now) {
				t.Errorf("nextFire must be strictly after now; got %v", got)
			}
		})
	}
}

func TestWorkerStartStop(t *testing.T) {
	w := newTestWorker(t, 3, "UTC")
	w.Start()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
