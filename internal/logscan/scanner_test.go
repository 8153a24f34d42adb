package logscan

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/graaaaa/vrcvisits/internal/instance"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

const (
	lineInvite = "2024.01.15 13:45:00 Log        -  [VRCFlowManagerVRC] Destination set: wrld_abc123:12345~private(usr_x)\n"
	linePublic = "2024.01.15 14:00:10 Log        -  [VRCFlowManagerVRC] Destination set: wrld_def456:777~region(jp)\n"
	lineJoin   = "2024.01.15 13:45:05 Log        -  [Behaviour] Joining wrld_abc123:12345~private(usr_x)\n"
	lineNoise  = "2024.01.15 13:45:06 Log        -  [Behaviour] OnPlayerJoined SomeUser\n"
)

func collect(t *testing.T, s *Scanner, r io.Reader) []visit.Visit {
	t.Helper()
	var out []visit.Visit
	for v, err := range s.Scan(r) {
		if err != nil {
			t.Fatalf("unexpected scan error: %v", err)
		}
		out = append(out, v)
	}
	return out
}

func TestScan_Example(t *testing.T) {
	s := NewScanner(WithLocation(time.UTC))
	line := "... [VRCFlowManagerVRC] Destination set: wrld_abc123:12345~private(usr_x) 2024.01.15 13:45:00 ..."

	got := collect(t, s, strings.NewReader(line))

	if len(got) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(got))
	}
	v := got[0]
	if v.Instance.WorldID != "wrld_abc123" {
		t.Errorf("WorldID = %q, want wrld_abc123", v.Instance.WorldID)
	}
	if v.Instance.Suffix != "12345~private(usr_x)" {
		t.Errorf("Suffix = %q", v.Instance.Suffix)
	}
	if v.Instance.Permission != instance.Invite {
		t.Errorf("Permission = %v, want invite", v.Instance.Permission)
	}
	want := time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)
	if !v.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", v.Timestamp, want)
	}
}

func TestScan_NoMarkerLines(t *testing.T) {
	s := NewScanner()
	got := collect(t, s, strings.NewReader(lineJoin+lineNoise+lineNoise))
	if len(got) != 0 {
		t.Errorf("expected no visits, got %d", len(got))
	}
	if st := s.Stats(); st.Lines != 3 || st.Markers != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestScan_EmptySource(t *testing.T) {
	got := collect(t, NewScanner(), strings.NewReader(""))
	if len(got) != 0 {
		t.Errorf("expected no visits, got %d", len(got))
	}
}

func TestScan_InsensitiveToInterleavedLines(t *testing.T) {
	plain := lineInvite + linePublic
	noisy := lineNoise + lineInvite + lineJoin + lineNoise +
		"garbage \xff\xfe\x00 wrld_zzz:1 2024.01.01 00:00:00\n" +
		linePublic + lineNoise

	a := collect(t, NewScanner(WithLocation(time.UTC)), strings.NewReader(plain))
	b := collect(t, NewScanner(WithLocation(time.UTC)), strings.NewReader(noisy))

	if len(a) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(a))
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("interleaving changed result (-plain +noisy):\n%s", diff)
	}
}

func TestScan_SkipsUnusableMarkerLines(t *testing.T) {
	input := strings.Join([]string{
		"2024.01.15 13:45:00 [VRCFlowManagerVRC] Destination set: ",
		"[VRCFlowManagerVRC] Destination set: wrld_abc:1",
		"2024.13.45 99:00:00 [VRCFlowManagerVRC] Destination set: wrld_abc:1",
		"2024.01.15 13:45:00 [VRCFlowManagerVRC] Destination set: \xff\xfewrld_ok:5~friends(usr_y)\xff",
	}, "\n")

	s := NewScanner(WithLocation(time.UTC))
	got := collect(t, s, strings.NewReader(input))

	if len(got) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(got))
	}
	if got[0].Instance.WorldID != "wrld_ok" {
		t.Errorf("WorldID = %q, want wrld_ok", got[0].Instance.WorldID)
	}
	if st := s.Stats(); st.Markers != 4 || st.Skipped != 3 || st.Visits != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestScan_CRLF(t *testing.T) {
	input := strings.ReplaceAll(lineInvite, "\n", "\r\n")
	got := collect(t, NewScanner(), strings.NewReader(input))
	if len(got) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(got))
	}
	if got[0].Instance.Suffix != "12345~private(usr_x)" {
		t.Errorf("Suffix = %q", got[0].Instance.Suffix)
	}
}

func TestScan_LongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	input := long + "\n" + lineInvite + long + lineInvite

	got := collect(t, NewScanner(), strings.NewReader(input))
	if len(got) != 2 {
		t.Errorf("expected 2 visits, got %d", len(got))
	}
}

func TestScan_LocalTimeAsWritten(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	got := collect(t, NewScanner(WithLocation(loc)), strings.NewReader(lineInvite))
	if len(got) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(got))
	}
	if h := got[0].Timestamp.Hour(); h != 13 {
		t.Errorf("Hour() = %d, want 13 (no conversion)", h)
	}
	if got[0].Timestamp.Location() != loc {
		t.Errorf("Location() = %v, want %v", got[0].Timestamp.Location(), loc)
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestScan_ReadError(t *testing.T) {
	boom := errors.New("disk gone")
	r := &failingReader{data: lineInvite, err: boom}

	s := NewScanner()
	var visits int
	var gotErr error
	for _, err := range s.Scan(r) {
		if err != nil {
			gotErr = err
			continue
		}
		visits++
	}

	if visits != 1 {
		t.Errorf("expected 1 visit before error, got %d", visits)
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("error = %v, want %v", gotErr, boom)
	}
	if !s.Stats().ReadError {
		t.Error("Stats().ReadError should be true")
	}
}

func TestScan_StopEarly(t *testing.T) {
	s := NewScanner()
	n := 0
	for range s.Scan(strings.NewReader(lineInvite + lineInvite + lineInvite)) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected to stop after 1, got %d", n)
	}
}
