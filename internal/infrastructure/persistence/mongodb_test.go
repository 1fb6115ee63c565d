package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoClientOptions(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantAuth bool
	}{
		{"no credentials", "", "", false},
		{"user without password", "desk", "", false},
		{"user and password", "desk", "secret", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := mongoClientOptions("mongodb://localhost:27017", tt.username, tt.password)

			require.NoError(t, opts.Validate())
			require.NotNil(t, opts.AppName)
			assert.Equal(t, mongoAppName, *opts.AppName)
			require.NotNil(t, opts.ServerSelectionTimeout)
			assert.Equal(t, mongoConnectTimeout, *opts.ServerSelectionTimeout)

			if !tt.wantAuth {
				assert.Nil(t, opts.Auth)
				return
			}
			require.NotNil(t, opts.Auth)
			assert.Equal(t, tt.username, opts.Auth.Username)
			assert.Equal(t, tt.password, opts.Auth.Password)
		})
	}
}
