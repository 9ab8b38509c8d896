package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"expertbook/internal/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func TestSniffImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{"png", pngHeader, "image/png", nil},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "image/jpeg", nil},
		{"gif", []byte("GIF89a\x01\x00\x01\x00"), "image/gif", nil},
		{"text named like an image", []byte("hello, this is not a picture"), "", ErrUnsupportedType},
		{"html", []byte("<html><body><script>alert(1)</script></body></html>"), "", ErrUnsupportedType},
		{"empty", nil, "", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, r, err := SniffImage(bytes.NewReader(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ct)

			all, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.data, all)
		})
	}
}

func TestSniffImage_LargeStream(t *testing.T) {
	data := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0xab}, 2*sniffLimit)...)

	ct, r, err := SniffImage(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, all)
}

func TestSniffImage_ReadError(t *testing.T) {
	_, _, err := SniffImage(iotest.ErrReader(errors.New("conn reset")))
	assert.ErrorContains(t, err, "conn reset")
	assert.NotErrorIs(t, err, ErrUnsupportedType)
}

func TestAvatarKey(t *testing.T) {
	tests := []struct {
		contentType string
		wantExt     string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/webp", ".webp"},
		{"image/gif", ".gif"},
	}
	for _, tt := range tests {
		key, err := AvatarKey(tt.contentType)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, AvatarPrefix))
		assert.True(t, strings.HasSuffix(key, tt.wantExt))
	}

	_, err := AvatarKey("application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	a, _ := AvatarKey("image/png")
	b, _ := AvatarKey("image/png")
	assert.NotEqual(t, a, b)
}

func TestNewMinIO_Validation(t *testing.T) {
	log := zap.NewNop()
	ctx := context.Background()

	_, err := NewMinIO(ctx, config.MinIOConfig{}, log)
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000"}, log)
	assert.ErrorContains(t, err, "credentials")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, log)
	assert.ErrorContains(t, err, "bucket")
}
