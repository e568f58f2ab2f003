package qrimg_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/infrastructure/qrimg"
)

func TestPNG_ProducesImage(t *testing.T) {
	r := qrimg.NewRenderer(0)

	png, err := r.PNG("AQtBY21lIFJldGFpbA==")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestPNG_EmptyPayloadFails(t *testing.T) {
	r := qrimg.NewRenderer(64)

	_, err := r.PNG("")
	assert.Error(t, err)
}

func TestDataURL_Prefix(t *testing.T) {
	r := qrimg.NewRenderer(64)

	url, err := r.DataURL("AQtBY21lIFJldGFpbA==")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestProbe_LocalRuntime(t *testing.T) {
	caps := qrimg.NewProber().Probe()

	assert.True(t, caps.QRRendering)
	assert.True(t, caps.LocalCrypto)
	assert.True(t, caps.AllAvailable())
}
