//go:build linux

package filehandle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestOpenOptions_MetaDataOnlyUsesOPath(t *testing.T) {
	flags := QueryFileInfo().unixFlags()
	assert.Equal(t, unix.O_PATH, flags&unix.O_PATH)
	assert.Equal(t, unix.O_NOFOLLOW, flags&unix.O_NOFOLLOW)

	flags = DefaultOpenOptions().unixFlags()
	assert.Zero(t, flags&unix.O_PATH)
}
