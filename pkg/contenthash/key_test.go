package contenthash

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEqual(t *testing.T) {
	mtime := time.Unix(1700000000, 123456789)
	k := Key{RelativePath: "a/b.txt", FileSize: 42, Mtime: mtime}

	t.Run("SameInstantOtherZone", func(t *testing.T) {
		other := k
		other.Mtime = mtime.In(time.FixedZone("X", 3600))
		assert.True(t, k.Equal(other))
	})

	t.Run("NanosecondDiffers", func(t *testing.T) {
		other := k
		other.Mtime = mtime.Add(time.Nanosecond)
		assert.False(t, k.Equal(other))
	})

	t.Run("SizeDiffers", func(t *testing.T) {
		other := k
		other.FileSize = 43
		assert.False(t, k.Equal(other))
	})

	t.Run("PathDiffers", func(t *testing.T) {
		other := k
		other.RelativePath = "a/c.txt"
		assert.False(t, k.Equal(other))
	})

	t.Run("SymlinkModeDiffers", func(t *testing.T) {
		other := k
		other.FollowSymlinks = true
		assert.False(t, k.Equal(other))
	})
}

func TestHashValue(t *testing.T) {
	var zero HashValue
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0000000000000000000000000000000000000000", zero.String())

	h := HashValue{0xde, 0xad, 0xbe, 0xef}
	assert.False(t, h.IsZero())
	assert.Equal(t, "deadbeef00000000000000000000000000000000", h.String())

	data, err := json.Marshal(map[string]HashValue{"hash": h})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hash":"deadbeef00000000000000000000000000000000"}`, string(data))
}
