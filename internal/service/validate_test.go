package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbookocr/internal/domain"
	"logbookocr/internal/service"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0}
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00")
)

func TestValidateImage_DeclaredType(t *testing.T) {
	ct, err := service.ValidateImage(pngHeader, "image/png", 1024)

	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestValidateImage_NormalizesDeclaredType(t *testing.T) {
	ct, err := service.ValidateImage(jpegHeader, "IMAGE/JPG; charset=binary", 1024)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)
}

func TestValidateImage_SniffsWhenUndeclared(t *testing.T) {
	ct, err := service.ValidateImage(jpegHeader, "", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	ct, err = service.ValidateImage(pngHeader, "application/octet-stream", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestValidateImage_RejectsOtherTypes(t *testing.T) {
	_, err := service.ValidateImage(gifHeader, "image/gif", 1024)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = service.ValidateImage(gifHeader, "", 1024)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = service.ValidateImage(nil, "image/png", 1024)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestValidateImage_TooLarge(t *testing.T) {
	data := make([]byte, 2048)
	copy(data, pngHeader)

	_, err := service.ValidateImage(data, "image/png", 1024)

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}
