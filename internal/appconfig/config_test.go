package appconfig

import "testing"

func TestDefaultConfigSSHDisabled(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if cfg.SSH.Enabled {
		t.Fatalf("expected ssh to default off")
	}
}
