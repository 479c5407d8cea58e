package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	b64 := base64.StdEncoding.EncodeToString(raw)

	t.Run("data url with mime", func(t *testing.T) {
		got, mime, err := DecodeBase64MaybeDataURL("data:image/jpeg;base64," + b64)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
		assert.Equal(t, "image/jpeg", mime)
	})

	t.Run("plain base64", func(t *testing.T) {
		got, mime, err := DecodeBase64MaybeDataURL(b64)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
		assert.Empty(t, mime)
	})

	t.Run("url safe alphabet", func(t *testing.T) {
		urlSafe := base64.URLEncoding.EncodeToString([]byte{0xFB, 0xFF, 0xFE})
		got, _, err := DecodeBase64MaybeDataURL(urlSafe)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFB, 0xFF, 0xFE}, got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := DecodeBase64MaybeDataURL("not base64 at all!!!")
		assert.Error(t, err)
	})
}
