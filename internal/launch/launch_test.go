package launch

import (
	"errors"
	"testing"

	"github.com/graaaaa/vrcvisits/internal/instance"
)

func mustDecode(t *testing.T, raw string) instance.Instance {
	t.Helper()
	inst, err := instance.Decode(raw)
	if err != nil {
		t.Fatalf("Decode(%q): %v", raw, err)
	}
	return inst
}

func TestDirectURI(t *testing.T) {
	inst := mustDecode(t, "wrld_abc:12345~private(usr_x)~region(jp)")
	want := "vrchat://launch?ref=vrcvisits&id=wrld_abc:12345~private(usr_x)~region(jp)"
	if got := DirectURI(inst); got != want {
		t.Errorf("DirectURI() = %q, want %q", got, want)
	}
}

func TestWebURI(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{
			raw:  "wrld_abc:12345~private(usr_x)",
			want: "https://vrchat.com/home/launch?instanceId=12345~private%28usr_x%29&worldId=wrld_abc",
		},
		{
			raw:  "wrld_abc",
			want: "https://vrchat.com/home/launch?worldId=wrld_abc",
		},
	}
	for _, tt := range tests {
		if got := WebURI(mustDecode(t, tt.raw)); got != tt.want {
			t.Errorf("WebURI(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLauncher_Launch(t *testing.T) {
	var opened []string
	killed := 0
	l := New(
		WithOpener(func(uri string) error {
			opened = append(opened, uri)
			return nil
		}),
		WithKiller(func() error {
			killed++
			return errors.New("no such process")
		}),
	)
	inst := mustDecode(t, "wrld_abc:1")

	if err := l.Launch(inst, false); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if killed != 0 {
		t.Errorf("killer called without killFirst")
	}

	if err := l.Launch(inst, true); err != nil {
		t.Fatalf("Launch with failing kill should still open: %v", err)
	}
	if killed != 1 {
		t.Errorf("killed = %d, want 1", killed)
	}
	if len(opened) != 2 || opened[0] != DirectURI(inst) {
		t.Errorf("opened = %v", opened)
	}
}

func TestLauncher_OpenError(t *testing.T) {
	boom := errors.New("no handler")
	l := New(WithOpener(func(string) error { return boom }))
	if err := l.Launch(mustDecode(t, "wrld_abc"), false); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
