package s3

import (
	"testing"

	"nomadnest/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectURL_AWS(t *testing.T) {
	client, err := NewClient(&config.Config{AWSRegion: "eu-west-1", S3BucketName: "nomadnest-media"})
	require.NoError(t, err)

	assert.Equal(t, "https://nomadnest-media.s3.eu-west-1.amazonaws.com/uploads/a.png", client.ObjectURL("uploads/a.png"))
}

func TestObjectURL_MinIO(t *testing.T) {
	client, err := NewClient(&config.Config{
		AWSRegion:    "us-east-1",
		AWSEndpoint:  "http://minio:9000",
		S3UseSSL:     "false",
		S3BucketName: "nomadnest-media",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/nomadnest-media/uploads/a.png", client.ObjectURL("uploads/a.png"))
}
