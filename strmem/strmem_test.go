// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package strmem_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/grailbio/strmem/strmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testImpls = []string{"stdlib", "vector", "128-2", "256-1", "512-4", "1024-8"}

func impls(t *testing.T) []strmem.Impl {
	var out []strmem.Impl
	for _, name := range testImpls {
		impl, err := strmem.Lookup(name)
		require.NoError(t, err, name)
		out = append(out, impl)
	}
	return out
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func slowStrlen(s []byte) int {
	n := 0
	for n < len(s) && s[n] != 0 {
		n++
	}
	return n
}

func slowStrcmp(s1, s2 []byte) int {
	for i := 0; ; i++ {
		var a, b byte
		if i < len(s1) {
			a = s1[i]
		}
		if i < len(s2) {
			b = s2[i]
		}
		if a != b || a == 0 {
			return sign(int(a) - int(b))
		}
	}
}

// randString returns a buffer of size+1 bytes holding a string of random
// length of characters drawn from a small alphabet.
func randString(r *rand.Rand, size int) []byte {
	s := make([]byte, size+1)
	n := r.Intn(size + 1)
	for i := 0; i < n; i++ {
		s[i] = 'a' + byte(r.Intn(4))
	}
	return s
}

func TestMem(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, impl := range impls(t) {
		for iter := 0; iter < 200; iter++ {
			n := r.Intn(300)
			src := make([]byte, n)
			r.Read(src)

			dst := make([]byte, n+1)
			dst[n] = '@'
			impl.Memcpy(dst, src, n)
			assert.Equal(t, src, dst[:n], "%s: memcpy", impl.Name())
			assert.EqualValues(t, '@', dst[n], "%s: memcpy overrun", impl.Name())

			other := append([]byte(nil), src...)
			if n > 0 && r.Intn(3) > 0 {
				other[r.Intn(n)] ^= byte(1 + r.Intn(255))
			}
			assert.Equal(t, bytes.Compare(src, other), sign(impl.Memcmp(src, other, n)), "%s: memcmp", impl.Name())

			c := byte(r.Intn(256))
			impl.Memset(dst, c, n)
			for i := 0; i < n; i++ {
				if dst[i] != c {
					t.Fatalf("%s: memset: byte %d is %d, want %d", impl.Name(), i, dst[i], c)
				}
			}
			assert.EqualValues(t, '@', dst[n], "%s: memset overrun", impl.Name())

			c = byte(r.Intn(256))
			assert.Equal(t, bytes.IndexByte(src, c), impl.Memchr(src, c, n), "%s: memchr", impl.Name())
		}
	}
}

func TestStrScan(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, impl := range impls(t) {
		for iter := 0; iter < 200; iter++ {
			s := randString(r, r.Intn(200))
			n := slowStrlen(s)
			assert.Equal(t, n, impl.Strlen(s), "%s: strlen", impl.Name())
			maxlen := r.Intn(len(s) + 1)
			want := n
			if maxlen < n {
				want = maxlen
			}
			assert.Equal(t, want, impl.Strnlen(s, maxlen), "%s: strnlen", impl.Name())

			c := 'a' + byte(r.Intn(5))
			assert.Equal(t, bytes.IndexByte(s[:n], c), impl.Strchr(s, c), "%s: strchr %c", impl.Name(), c)
			assert.Equal(t, n, impl.Strchr(s, 0), "%s: strchr 0", impl.Name())

			s2 := randString(r, r.Intn(200))
			if r.Intn(2) == 0 {
				s2 = append([]byte(nil), s...)
				if n > 0 && r.Intn(2) == 0 {
					s2[r.Intn(n)] = 'z'
				}
			}
			assert.Equal(t, slowStrcmp(s, s2), sign(impl.Strcmp(s, s2)), "%s: strcmp %q %q", impl.Name(), s, s2)
		}
	}
}

func TestStrCopy(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, impl := range impls(t) {
		for iter := 0; iter < 200; iter++ {
			src := randString(r, r.Intn(150))
			n := slowStrlen(src)

			dst := bytes.Repeat([]byte{'@'}, 2*len(src)+1)
			impl.Strcpy(dst, src)
			assert.Equal(t, src[:n+1], dst[:n+1], "%s: strcpy", impl.Name())
			assert.EqualValues(t, '@', dst[n+1], "%s: strcpy overrun", impl.Name())

			prefix := randString(r, r.Intn(20))
			p := slowStrlen(prefix)
			dst = bytes.Repeat([]byte{'@'}, p+n+2)
			copy(dst, prefix[:p+1])
			impl.Strcat(dst, src)
			assert.Equal(t, prefix[:p], dst[:p], "%s: strcat prefix", impl.Name())
			assert.Equal(t, src[:n+1], dst[p:p+n+1], "%s: strcat", impl.Name())
			assert.EqualValues(t, '@', dst[p+n+1], "%s: strcat overrun", impl.Name())

			k := r.Intn(len(src) + 1)
			dst = bytes.Repeat([]byte{'@'}, len(src)+2)
			impl.Strncpy(dst, src, k)
			for i := 0; i < k; i++ {
				want := byte(0)
				if i < n {
					want = src[i]
				}
				if dst[i] != want {
					t.Fatalf("%s: strncpy(%q, %d): byte %d is %d, want %d", impl.Name(), src, k, i, dst[i], want)
				}
			}
			for i := k; i < len(dst); i++ {
				if dst[i] != '@' {
					t.Fatalf("%s: strncpy(%q, %d): byte %d touched", impl.Name(), src, k, i)
				}
			}

			dst = bytes.Repeat([]byte{'@'}, p+k+2)
			copy(dst, prefix[:p+1])
			impl.Strncat(dst, src, k)
			l := n
			if k < l {
				l = k
			}
			assert.Equal(t, prefix[:p], dst[:p], "%s: strncat prefix", impl.Name())
			assert.Equal(t, src[:l], dst[p:p+l], "%s: strncat", impl.Name())
			assert.EqualValues(t, 0, dst[p+l], "%s: strncat terminator", impl.Name())
		}
	}
}

// Strings that fill their slice are terminated at the end of the slice.
func TestUnterminated(t *testing.T) {
	for _, impl := range impls(t) {
		s := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
		assert.Equal(t, len(s), impl.Strlen(s), impl.Name())
		assert.Equal(t, 10, impl.Strnlen(s, 10), impl.Name())
		assert.Equal(t, len(s), impl.Strnlen(s, 100), impl.Name())
		assert.Equal(t, -1, impl.Strchr(s, '!'), impl.Name())
		assert.Equal(t, -1, impl.Strchr(s, 0), impl.Name())
		assert.Equal(t, 35, impl.Strchr(s, '9'), impl.Name())
		assert.Equal(t, 0, impl.Strcmp(s, append(s[:len(s):len(s)], 0)), impl.Name())
		assert.True(t, impl.Strcmp(s, s[:10]) > 0, impl.Name())
		assert.True(t, impl.Strcmp(s[:10], s) < 0, impl.Name())

		dst := make([]byte, len(s)+1)
		dst[len(s)] = '@'
		impl.Strcpy(dst, s)
		assert.Equal(t, s, dst[:len(s)], impl.Name())
		assert.EqualValues(t, 0, dst[len(s)], impl.Name())

		assert.Equal(t, 0, impl.Memcmp(nil, nil, 0), impl.Name())
		assert.Equal(t, -1, impl.Memchr(nil, 0, 0), impl.Name())
		assert.Equal(t, 0, impl.Strlen(nil), impl.Name())
	}
}

func TestLookup(t *testing.T) {
	for _, tc := range []struct {
		name, want string
	}{
		{"stdlib", "stdlib"},
		{"vector", "128-1"},
		{"256-4", "256-4"},
		{"1024-8", "1024-8"},
	} {
		impl, err := strmem.Lookup(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, impl.Name())
	}
	for _, name := range []string{"", "libc", "64-1", "128-3", "x-1", "128-y"} {
		_, err := strmem.Lookup(name)
		assert.Error(t, err, name)
	}
}

func TestNames(t *testing.T) {
	names := strmem.Names()
	require.Len(t, names, 17)
	assert.Equal(t, "stdlib", names[0])
	assert.Equal(t, "128-1", names[1])
	assert.Equal(t, "1024-8", names[16])
	for _, name := range names {
		impl, err := strmem.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, impl.Name())
	}
}

func TestParseName(t *testing.T) {
	vlen, lmul, err := strmem.ParseName("512-2")
	require.NoError(t, err)
	assert.Equal(t, 512, vlen)
	assert.Equal(t, 2, lmul)
	vlen, _, err = strmem.ParseName("stdlib")
	require.NoError(t, err)
	assert.Equal(t, 0, vlen)
}

func TestInstructions(t *testing.T) {
	impl, err := strmem.Lookup("128-1")
	require.NoError(t, err)
	c, ok := impl.(strmem.Counter)
	require.True(t, ok)
	src := make([]byte, 100)
	dst := make([]byte, 100)
	impl.Memcpy(dst, src, 100)
	// Seven strips of vsetvli, load and store.
	assert.EqualValues(t, 21, c.Instructions())
	impl.Memcpy(dst, src, 0)
	assert.EqualValues(t, 21, c.Instructions())

	wide, err := strmem.Lookup("1024-8")
	require.NoError(t, err)
	wide.Memcpy(dst, src, 100)
	assert.EqualValues(t, 3, wide.(strmem.Counter).Instructions())

	_, ok = strmem.Std.(strmem.Counter)
	assert.False(t, ok)
}
