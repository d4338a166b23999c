package bufpool

import (
	"bytes"
	"crypto/sha1"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SizeClasses(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"Zero", 0, DefaultSmallSize},
		{"Small", 100, DefaultSmallSize},
		{"SmallBoundary", DefaultSmallSize, DefaultSmallSize},
		{"Medium", DefaultSmallSize + 1, DefaultMediumSize},
		{"MediumBoundary", DefaultMediumSize, DefaultMediumSize},
		{"Large", 100 * 1024, DefaultLargeSize},
		{"Oversize", 2 * DefaultLargeSize, 2 * DefaultLargeSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Get(tt.size)
			defer Put(buf)
			assert.Len(t, buf, tt.size)
			assert.Equal(t, tt.wantCap, cap(buf))
		})
	}
}

func TestGet_NegativeSize(t *testing.T) {
	buf := Get(-5)
	assert.Empty(t, buf)
	assert.Equal(t, DefaultSmallSize, cap(buf))
	Put(buf)
}

func TestPut_IgnoresForeignBuffers(t *testing.T) {
	assert.NotPanics(t, func() {
		Put(nil)
		Put(make([]byte, 10))
		Put(make([]byte, 0, DefaultMediumSize+1))
	})
}

func TestPut_ReturnsFullCapacity(t *testing.T) {
	p := NewPool(&Config{SmallSize: 64, MediumSize: 128, LargeSize: 256})

	buf := p.Get(10)
	require.Len(t, buf, 10)
	p.Put(buf)

	again := p.Get(64)
	assert.Len(t, again, 64)
	assert.Equal(t, 64, cap(again))
}

func TestNewPool_Defaults(t *testing.T) {
	p := NewPool(&Config{MediumSize: -1})
	assert.Equal(t, DefaultSmallSize, cap(p.Get(1)))
	assert.Equal(t, DefaultMediumSize, cap(p.Get(DefaultSmallSize+1)))
	assert.Equal(t, DefaultLargeSize, cap(p.Get(DefaultMediumSize+1)))
}

func TestStats(t *testing.T) {
	p := NewPool(&Config{SmallSize: 16, MediumSize: 32, LargeSize: 64})
	p.Put(p.Get(8))
	p.Put(p.Get(40))
	_ = p.Get(65)

	st := p.Stats()
	assert.Equal(t, uint64(2), st.Pooled)
	assert.Equal(t, uint64(1), st.Oversize)
}

func TestCopy_HashesLikeDirectWrite(t *testing.T) {
	data := strings.Repeat("dittowatch ", 20000)

	h1 := sha1.New()
	n, err := Copy(h1, strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	h2 := sha1.New()
	h2.Write([]byte(data))
	assert.Equal(t, h2.Sum(nil), h1.Sum(nil))
}

func TestCopy_Empty(t *testing.T) {
	var out bytes.Buffer
	n, err := Copy(&out, strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConcurrentGetPut(t *testing.T) {
	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf := Get((id*977 + j*131) % (DefaultMediumSize + 1))
				for k := range buf {
					buf[k] = byte(id)
				}
				Put(buf)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkCopy(b *testing.B) {
	data := bytes.Repeat([]byte{0xAB}, 1<<20)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := sha1.New()
		_, _ = Copy(h, bytes.NewReader(data))
	}
}
