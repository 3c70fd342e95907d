package profile

import "testing"

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), nil, WithPath("/tmp/p"), WithQuiet(true))

	if p.mode != "cpu" || p.path != "/tmp/p" || !p.quiet {
		t.Errorf("New() = %+v", p)
	}

	if got := New(WithMode("cpu"), WithMode("")).Mode(); got != "" {
		t.Errorf("later option did not win: mode %q", got)
	}
}

func TestStart_NoMode(t *testing.T) {
	stop := New(WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() without a mode = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestStart_UnknownMode(t *testing.T) {
	stop := New(WithMode("bogus"), WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() with unknown mode = %T, want no-op", stop)
	}
}
