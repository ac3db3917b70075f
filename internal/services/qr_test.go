package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRService_GeneratePNG(t *testing.T) {
	service := NewQRService()

	png, err := service.GeneratePNG("https://short.example/abc123", 256)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = service.GeneratePNG("", 256)
	assert.Error(t, err)
}
