package qrcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePassData(t *testing.T) {
	raw, err := EncodePassData("INNER-CIRCLE-#007", "Elena Vasquez", "event-1", "tok-abc", "December 12, 2026")
	require.NoError(t, err)

	data, err := DecodePassData(raw)
	require.NoError(t, err)

	assert.Equal(t, "INNER-CIRCLE-#007", data.PassNumber)
	assert.Equal(t, "Elena Vasquez", data.Member)
	assert.Equal(t, "event-1", data.EventID)
	assert.Equal(t, "tok-abc", data.Token)
	assert.Equal(t, PassDataType, data.Type)
	assert.Equal(t, PassDataVersion, data.Version)
	assert.Equal(t, "December 12, 2026", data.EventDate)
	assert.NoError(t, data.Validate())
}

func TestDecodePassDataRejectsGarbage(t *testing.T) {
	_, err := DecodePassData("not json at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR data format")
}

func TestValidateRejectsIncompletePayloads(t *testing.T) {
	base := func() PassData {
		return PassData{
			PassNumber: "INNER-CIRCLE-#001",
			Member:     "Marcus Webb",
			EventID:    "event-1",
			Token:      "tok-1",
			Type:       PassDataType,
			Version:    PassDataVersion,
		}
	}

	valid := base()
	require.NoError(t, valid.Validate())

	missing := base()
	missing.PassNumber = ""
	assert.EqualError(t, missing.Validate(), "missing pass_number")

	missing = base()
	missing.Member = ""
	assert.EqualError(t, missing.Validate(), "missing member")

	missing = base()
	missing.Token = ""
	assert.EqualError(t, missing.Validate(), "missing token")

	wrongType := base()
	wrongType.Type = "some_other_pass"
	assert.ErrorContains(t, wrongType.Validate(), "unexpected payload type")
}

func TestGenerateWritesPNG(t *testing.T) {
	dir := t.TempDir()

	for _, style := range []Style{StylePlain, StyleLuxury} {
		out := filepath.Join(dir, "nested", "code.png")
		require.NoError(t, Generate("hello", out, style))

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "nested")))
	}
}

func TestSaveQRCode(t *testing.T) {
	dir := t.TempDir()

	res, err := SaveQRCode(dir, "INNER-CIRCLE-#042", "James Okafor", "event-1", "tok-42", "December 12, 2026")
	require.NoError(t, err)

	assert.FileExists(t, res.ImagePath)
	assert.Equal(t, "/static/qr_codes/INNER-CIRCLE-#042.png", res.ImageURL)

	data, err := DecodePassData(res.Data)
	require.NoError(t, err)
	assert.NoError(t, data.Validate())
	assert.Equal(t, "tok-42", data.Token)
}

func TestVerificationQR(t *testing.T) {
	dir := t.TempDir()

	path, err := VerificationQR(dir, "tok-99", "https://example.com/verify/tok-99")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "qr_codes", "verification", "tok-99.png"), path)
	assert.FileExists(t, path)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b-c", sanitizeFilename(`a/b\c`))
	assert.Equal(t, "INNER-CIRCLE-#001", sanitizeFilename("INNER-CIRCLE-#001"))
}
