package cli

import "testing"

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"extract", "upsert", "sync", "feed", "run"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}

	for _, flag := range []string{"config", "dry-run", "verbose"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag %q", flag)
		}
	}
}

func TestExtractCmdFlags(t *testing.T) {
	cmd := newExtractCmd()
	if cmd.Flags().Lookup("output") == nil {
		t.Error("extract should expose --output")
	}
}

func TestRunCmdFlags(t *testing.T) {
	cmd := newRunCmd()
	if cmd.Flags().Lookup("schedule") == nil {
		t.Error("run should expose --schedule")
	}
}
