package xdr

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// DecodeUint32 Tests
// ============================================================================

func TestDecodeUint32(t *testing.T) {
	t.Run("DecodesBigEndian", func(t *testing.T) {
		reader := bytes.NewReader([]byte{0x00, 0x01, 0x86, 0xA5})
		value, err := DecodeUint32(reader)
		require.NoError(t, err)
		assert.Equal(t, uint32(100005), value)
	})

	t.Run("FailsOnShortRead", func(t *testing.T) {
		reader := bytes.NewReader([]byte{0x00, 0x01})
		_, err := DecodeUint32(reader)
		assert.Error(t, err)
	})
}

// ============================================================================
// DecodeBool Tests
// ============================================================================

func TestDecodeBool(t *testing.T) {
	t.Run("ZeroIsFalse", func(t *testing.T) {
		reader := bytes.NewReader([]byte{0, 0, 0, 0})
		value, err := DecodeBool(reader)
		require.NoError(t, err)
		assert.False(t, value)
	})

	t.Run("OneIsTrue", func(t *testing.T) {
		reader := bytes.NewReader([]byte{0, 0, 0, 1})
		value, err := DecodeBool(reader)
		require.NoError(t, err)
		assert.True(t, value)
	})

	t.Run("NonzeroIsTrue", func(t *testing.T) {
		reader := bytes.NewReader([]byte{0xFF, 0, 0, 0})
		value, err := DecodeBool(reader)
		require.NoError(t, err)
		assert.True(t, value)
	})

	t.Run("FailsOnEmptyInput", func(t *testing.T) {
		reader := bytes.NewReader([]byte{})
		_, err := DecodeBool(reader)
		assert.Error(t, err)
	})
}

// ============================================================================
// DecodeOpaque Tests
// ============================================================================

func TestDecodeOpaque(t *testing.T) {
	t.Run("DecodesAlignedData", func(t *testing.T) {
		input := []byte{
			0, 0, 0, 4, // length
			0x01, 0x02, 0x03, 0x04, // data (no padding needed)
		}
		data, err := DecodeOpaque(bytes.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data)
	})

	t.Run("SkipsPadding", func(t *testing.T) {
		input := []byte{
			0, 0, 0, 5, // length
			'h', 'e', 'l', 'l', 'o', // data
			0, 0, 0, // padding to 4-byte boundary
			0, 0, 0, 7, // next item, must be readable after padding
		}
		reader := bytes.NewReader(input)

		data, err := DecodeOpaque(reader)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)

		next, err := DecodeUint32(reader)
		require.NoError(t, err)
		assert.Equal(t, uint32(7), next)
	})

	t.Run("DecodesEmptyData", func(t *testing.T) {
		input := []byte{0, 0, 0, 0}
		data, err := DecodeOpaque(bytes.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("RejectsExcessiveLength", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(2*1024*1024)))

		_, err := DecodeOpaque(&buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum")
	})

	t.Run("FailsOnTruncatedData", func(t *testing.T) {
		input := []byte{
			0, 0, 0, 8, // claims 8 bytes
			0x01, 0x02, // only 2 present
		}
		_, err := DecodeOpaque(bytes.NewReader(input))
		assert.Error(t, err)
	})

	t.Run("FailsOnMissingPadding", func(t *testing.T) {
		input := []byte{
			0, 0, 0, 3, // length
			'a', 'b', 'c', // data, 1 padding byte missing
		}
		_, err := DecodeOpaque(bytes.NewReader(input))
		assert.Error(t, err)
	})
}

// ============================================================================
// DecodeString Tests
// ============================================================================

func TestDecodeString(t *testing.T) {
	t.Run("DecodesExportPath", func(t *testing.T) {
		input := []byte{
			0, 0, 0, 7, // length
			'/', 'e', 'x', 'p', 'o', 'r', 't', // data
			0, // padding
		}
		s, err := DecodeString(bytes.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "/export", s)
	})

	t.Run("DecodesEmptyString", func(t *testing.T) {
		input := []byte{0, 0, 0, 0}
		s, err := DecodeString(bytes.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("FailsOnTruncatedInput", func(t *testing.T) {
		input := []byte{0, 0, 0, 10, 'a', 'b'}
		_, err := DecodeString(bytes.NewReader(input))
		assert.Error(t, err)
	})
}
