package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabula-app/tabula/pkg/types"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"valid sqlite config", types.Config{Backend: types.BackendSQLite, DataDir: "/tmp/x"}, nil},
		{"empty data dir is allowed", types.Config{Backend: types.BackendSQLite}, nil},
		{"empty backend", types.Config{DataDir: "/tmp/x"}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres"}, types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
