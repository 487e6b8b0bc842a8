package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "test_password")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	// Defaults
	if cfg.MatchIntervalSeconds != 60 {
		t.Errorf("MatchIntervalSeconds = %d, want 60", cfg.MatchIntervalSeconds)
	}
	if cfg.MaxAgeGapYears != 2 {
		t.Errorf("MaxAgeGapYears = %d, want 2", cfg.MaxAgeGapYears)
	}
	if cfg.RegionExactWeight != 40 {
		t.Errorf("RegionExactWeight = %d, want 40", cfg.RegionExactWeight)
	}
	if !cfg.QueueEnabled {
		t.Error("QueueEnabled = false, want true by default")
	}
}

func TestLoadConfig_MissingDBPassword(t *testing.T) {
	os.Clearenv()

	_, err := LoadConfig()
	if err == nil {
		t.Error("LoadConfig() expected error for missing DB_PASSWORD, got nil")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PASSWORD", "pw")
	os.Setenv("MATCH_INTERVAL_SECONDS", "15")
	os.Setenv("MAX_AGE_GAP_YEARS", "5")
	os.Setenv("QUEUE_ENABLED", "false")
	os.Setenv("MINOR_SAME_AGE_BONUS", "10")
	defer os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.MatchIntervalSeconds != 15 {
		t.Errorf("MatchIntervalSeconds = %d, want 15", cfg.MatchIntervalSeconds)
	}
	if cfg.MaxAgeGapYears != 5 {
		t.Errorf("MaxAgeGapYears = %d, want 5", cfg.MaxAgeGapYears)
	}
	if cfg.QueueEnabled {
		t.Error("QueueEnabled = true, want false")
	}
	if cfg.MinorSameAgeBonus != 10 {
		t.Errorf("MinorSameAgeBonus = %d, want 10", cfg.MinorSameAgeBonus)
	}
}

func TestValidate_BadInterval(t *testing.T) {
	cfg := &Config{
		DBPassword:           "pw",
		MatchIntervalSeconds: 0,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for zero interval, got nil")
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:    "production",
				DBSSLMode: "require",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:    "development",
				DBSSLMode: "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:    "production",
				DBSSLMode: "disable",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn := cfg.GetDSN(); dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetMatchInterval(t *testing.T) {
	cfg := &Config{MatchIntervalSeconds: 45}

	if interval := cfg.GetMatchInterval(); interval != 45*time.Second {
		t.Errorf("GetMatchInterval() = %v, want 45s", interval)
	}
}

func TestGetRetentionWindow(t *testing.T) {
	cfg := &Config{QueueRetentionDays: 7}

	if window := cfg.GetRetentionWindow(); window != 7*24*time.Hour {
		t.Errorf("GetRetentionWindow() = %v, want 168h", window)
	}
}

func TestSuperRegionTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "Empty",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "Single group",
			input: "west-eu=france,germany",
			want:  map[string]string{"france": "west-eu", "germany": "west-eu"},
		},
		{
			name:  "Multiple groups with spaces",
			input: "west-eu=france, germany;east-asia=japan",
			want: map[string]string{
				"france":  "west-eu",
				"germany": "west-eu",
				"japan":   "east-asia",
			},
		},
		{
			name:  "Malformed fragment skipped",
			input: "west-eu=france;garbage;=orphan",
			want:  map[string]string{"france": "west-eu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SuperRegions: tt.input}
			got := cfg.SuperRegionTable()

			if len(got) != len(tt.want) {
				t.Fatalf("SuperRegionTable() = %v, want %v", got, tt.want)
			}
			for region, bucket := range tt.want {
				if got[region] != bucket {
					t.Errorf("SuperRegionTable()[%q] = %q, want %q", region, got[region], bucket)
				}
			}
		})
	}
}
