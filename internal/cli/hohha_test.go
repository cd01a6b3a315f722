package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunHohhaEncryptDecryptRoundTrip(t *testing.T) {
	var enc bytes.Buffer
	code := RunHohha([]string{
		"-e", "-j", "2", "-k", "ESIzRA==", "-l", "4",
		"-S", "4 3 2 1 8 7 6 5", "-M", "Hi!",
	}, nil, &enc, &strings.Builder{})
	if code != 0 {
		t.Fatalf("encrypt: exit code %d", code)
	}
	ciphertext := strings.TrimSpace(enc.String())

	var dec bytes.Buffer
	code = RunHohha([]string{
		"-D", "-j", "2", "-k", "ESIzRA==", "-l", "4",
		"-S", "4 3 2 1 8 7 6 5", "-m", ciphertext,
	}, nil, &dec, &strings.Builder{})
	if code != 0 {
		t.Fatalf("decrypt: exit code %d", code)
	}
	if got := strings.TrimSuffix(dec.String(), "\n"); got != "Hi!" {
		t.Errorf("round trip = %q, want %q", got, "Hi!")
	}
}

func TestRunHohhaMissingMessageIsUsageError(t *testing.T) {
	var stderr strings.Builder
	code := RunHohha([]string{"-e", "-j", "2", "-k", "ESIzRA==", "-S", "4 3 2 1 8 7 6 5"}, nil, &strings.Builder{}, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRunHohhaInvalidSaltIsReported(t *testing.T) {
	var stderr strings.Builder
	code := RunHohha([]string{"-e", "-j", "2", "-k", "ESIzRA==", "-S", "not enough", "-M", "x"}, nil, &strings.Builder{}, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "-S") {
		t.Errorf("stderr = %q, want mention of -S", stderr.String())
	}
}
