package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	s := &MinioStore{endpoint: "minio.local:9000", bucket: "videos"}
	assert.Equal(t, "http://minio.local:9000/videos/v1.mp4", s.ObjectURL("v1.mp4"))

	s.useSSL = true
	assert.Equal(t, "https://minio.local:9000/videos/v1.mp4", s.ObjectURL("v1.mp4"))
}
