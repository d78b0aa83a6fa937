package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// parseFlags builds a throwaway command with the physics flag set and
// parses args into the package-level flag variables. Registering the
// flags resets every variable to its default, so tests do not leak
// state into each other.
func parseFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{
		Use:  "radius",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	addPhysicsFlags(cmd)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	return cmd
}

func TestResolveInputsAllFlagsGiven(t *testing.T) {
	cmd := parseFlags(t, "--current", "1250", "--freq", "55e6", "--ion", "H", "--harmonic", "2")

	amps, f, ion, n, err := resolveInputs(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amps != 1250 || f != 55e6 || n != 2 {
		t.Errorf("inputs mismatch: I=%g f=%g n=%d", amps, f, n)
	}
	if ion.Z != 1 || ion.A != 1 {
		t.Errorf("expected hydrogen, got %+v", ion)
	}
}

func TestResolveInputsEachInputRequired(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{
			"missing current",
			[]string{"--freq", "55e6", "--ion", "H", "--harmonic", "1"},
			"--current",
		},
		{
			"missing freq",
			[]string{"--current", "1250", "--ion", "H", "--harmonic", "1"},
			"--freq",
		},
		{
			"missing ion",
			[]string{"--current", "1250", "--freq", "55e6", "--harmonic", "1"},
			"--ion",
		},
		{
			"missing harmonic",
			[]string{"--current", "1250", "--freq", "55e6", "--ion", "H"},
			"--harmonic",
		},
	}

	for _, tc := range cases {
		cmd := parseFlags(t, tc.args...)
		_, _, _, _, err := resolveInputs(cmd)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not name %s", tc.name, err, tc.want)
		}
	}
}

func TestResolveInputsPresetSuppliesDefaults(t *testing.T) {
	cmd := parseFlags(t, "--preset", "deuterium-second")

	amps, f, ion, n, err := resolveInputs(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amps != 1250 || f != 55e6 || n != 2 {
		t.Errorf("preset not applied: I=%g f=%g n=%d", amps, f, n)
	}
	if ion.A != 2 {
		t.Errorf("expected deuterium, got %+v", ion)
	}
}

func TestResolveInputsFlagOverridesPreset(t *testing.T) {
	cmd := parseFlags(t, "--preset", "hydrogen-fundamental", "--harmonic", "3")

	_, _, _, n, err := resolveInputs(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected flag to override preset harmonic, got %d", n)
	}
}
