package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "Empty",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "Path only",
			cfg: Config{
				WatchPath: "some/dir",
			},
			wantErr: false,
		},
		{
			name: "Valid excludes",
			cfg: Config{
				WatchPath:    "some/dir",
				ExcludePaths: []string{"*.tmp", ".#*"},
			},
			wantErr: false,
		},
		{
			name: "Bad exclude pattern",
			cfg: Config{
				WatchPath:    "some/dir",
				ExcludePaths: []string{"[unclosed"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
