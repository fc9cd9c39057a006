package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
)

func TestNewMinioClientValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"missing endpoint", config.StorageConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{"missing credentials", config.StorageConfig{Endpoint: "localhost:9000", Bucket: "b"}},
		{"missing bucket", config.StorageConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinioClient(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewMinioClientAcceptsSchemeEndpoint(t *testing.T) {
	c, err := NewMinioClient(config.StorageConfig{
		Endpoint:  "http://localhost:9000/",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "inventory-reports",
	})
	require.NoError(t, err)
	assert.Equal(t, "inventory-reports", c.bucket)
	assert.Equal(t, "localhost:9000", c.client.EndpointURL().Host)
}
