// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package hamming

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
)

func TestBits(t *testing.T) {
	assert.Equal(t, uint8(1), Bit(0x04, 2))
	assert.Equal(t, uint8(0), Bit(0x04, 1))
	assert.Equal(t, uint32(0x0F), Bitmask(4))
	assert.Equal(t, uint32(0x3FFFF), Bitmask(18))
	assert.Equal(t, uint8(0x09), PackBits(1, 0, 0, 1))
	assert.Equal(t, uint8(0xFF), PackBits(1, 1, 1, 1, 1, 1, 1, 1))
	assert.Equal(t, uint8(0x01), PackBits(3)) // 只取最低位
}

func TestNybble(t *testing.T) {
	for i := uint8(0); i < 16; i++ {
		v, ok := DecodeNybble(EncodeNybble(i))
		assert.Equal(t, true, ok)
		assert.Equal(t, i, v)
	}

	// 高位被丢弃
	assert.Equal(t, EncodeNybble(0x03), EncodeNybble(0xF3))
	assert.Equal(t, uint8(0x15), EncodeNybble(0))
	assert.Equal(t, uint8(0xEA), EncodeNybble(15))

	_, ok := DecodeNybble(0x00)
	assert.Equal(t, false, ok)
}

func TestEncodeByte(t *testing.T) {
	assert.Equal(t, [2]uint8{0x02, 0xEA}, EncodeByte(0x1F))
	assert.Equal(t, [2]uint8{0x15, 0x15}, EncodeByte(0x00))
}

// 每个码字与其他码字至少有4位不同
func TestNybbleDistance(t *testing.T) {
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			d := 0
			x := hamming84Table[i] ^ hamming84Table[j]
			for ; x != 0; x &= x - 1 {
				d++
			}
			if d < 4 {
				t.Errorf("distance too small. i=%d, j=%d, d=%d", i, j, d)
			}
		}
	}
}

func TestOddParity(t *testing.T) {
	for i := 0; i < 128; i++ {
		p := OddParity(uint8(i))
		assert.Equal(t, true, IsOddParity(p))
		assert.Equal(t, uint8(i), p&0x7F)
	}
	assert.Equal(t, uint8(0x20), OddParity(' '))
	assert.Equal(t, uint8(0x80), OddParity(0x00))
	assert.Equal(t, OddParity(0x41), OddParity(0xC1))

	in := []byte("Niklas")
	out := OddParityBytes(in)
	assert.Equal(t, len(in), len(out))
	assert.Equal(t, []byte("Niklas"), in)
	for i := range out {
		assert.Equal(t, true, IsOddParity(out[i]))
		assert.Equal(t, OddParity(in[i]), out[i])
	}
	assert.Equal(t, 0, len(OddParityBytes(nil)))
}

func TestEncode2418(t *testing.T) {
	golden := []struct {
		value    uint32
		expected [3]uint8
	}{
		// mode 0x0F, address 16, data 0x61
		{16 | 0x0F<<6 | 0x61<<11, [3]uint8{0x02, 0x3D, 0x61}},
		// mode 0x0F, address 20, data 0x79
		{20 | 0x0F<<6 | 0x79<<11, [3]uint8{0x29, 0x3D, 0x79}},
		// mode 0x1F, address 0x3F, data 0x00
		{0x3F | 0x1F<<6, [3]uint8{0x74, 0xFF, 0x80}},
		// mode 0x1F, address 0x3F, data 0x7F
		{0x3FFFF, [3]uint8{0x74, 0x7F, 0xFF}},
	}
	for _, item := range golden {
		assert.Equal(t, item.expected, Encode2418(item.value))
		assert.Equal(t, item.value, Decode2418(item.expected))
	}
}

func TestEncodeDecode2418(t *testing.T) {
	for v := uint32(0); v <= Bitmask(18); v += 97 {
		assert.Equal(t, v, Decode2418(Encode2418(v)))
	}
	// 18位以外被丢弃
	assert.Equal(t, Encode2418(0x155), Encode2418(0x155|1<<18))
}

func BenchmarkEncode2418(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Encode2418(uint32(i) & 0x3FFFF)
	}
}
