package cli

import (
	"testing"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"import no file", []string{"import"}},
		{"show no id", []string{"show"}},
		{"remove no id", []string{"remove"}},
		{"price no id", []string{"price"}},
		{"guest-price no args", []string{"guest-price"}},
		{"guest-price one arg", []string{"guest-price", "100"}},
		{"guest-price three args", []string{"guest-price", "100", "4", "extra"}},
		{"match no proposal", []string{"match"}},
		{"serve extra", []string{"serve", "extra"}},
		{"list extra", []string{"list", "extra"}},
		{"config set one arg", []string{"config", "set", "port"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGuestPriceRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric rate", []string{"guest-price", "abc", "4"}},
		{"non-numeric nights", []string{"guest-price", "100", "four"}},
		{"zero nights", []string{"guest-price", "100", "0"}},
		{"eight nights", []string{"guest-price", "100", "8"}},
		{"negative rate", []string{"guest-price", "--", "-5", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPriceRejectsOutOfRangeNights(t *testing.T) {
	dbPath := isolate(t)
	writeListings(t, dbPath)

	for _, n := range []string{"1", "8"} {
		_, err := executeCommand("price", "lst-man", "--nights", n, "--db", dbPath)
		if err == nil {
			t.Errorf("nights %s: expected error", n)
		}
	}
}
