// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package wst_test

import (
	"testing"

	"github.com/q191201771/lalop47/pkg/hamming"
	"github.com/q191201771/lalop47/pkg/wst"
	"github.com/q191201771/lalop47/pkg/x26"
	"github.com/q191201771/naza/pkg/assert"
)

func checkPackets(t *testing.T, packets [][]byte) {
	for _, p := range packets {
		assert.Equal(t, wst.PacketSize, len(p))
		assert.Equal(t, []byte{0x55, 0x55, 0x27}, p[:3])
		_, _, ok := wst.DecodeAddress(p)
		assert.Equal(t, true, ok)
	}
}

func TestEncodePrefix(t *testing.T) {
	assert.Equal(t, []byte{0x55, 0x55, 0x27, 0x15, 0x15}, wst.EncodePrefix(0, 0))
	// row 19: x = 0 + 1<<3, y = 9
	assert.Equal(t, []byte{0x55, 0x55, 0x27, 0xD0, 0xC7}, wst.EncodePrefix(0, 19))
	// row 26: x = 0, y = 13
	assert.Equal(t, []byte{0x55, 0x55, 0x27, 0x15, 0xB6}, wst.EncodePrefix(0, 26))

	for mag := 0; mag < 8; mag++ {
		for row := 0; row < 32; row++ {
			m, r, ok := wst.DecodeAddress(wst.EncodePrefix(mag, row))
			assert.Equal(t, true, ok)
			assert.Equal(t, mag, m)
			assert.Equal(t, row, r)
		}
	}

	// 超出范围的值被截断
	assert.Equal(t, wst.EncodePrefix(1, 3), wst.EncodePrefix(9, 35))

	_, _, ok := wst.DecodeAddress([]byte{0x55})
	assert.Equal(t, false, ok)
}

func TestEncodeHeaderPacket(t *testing.T) {
	p := wst.EncodeHeaderPacket(wst.DefaultHeaderParam(0, 0x01))
	assert.Equal(t, wst.PacketSize, len(p))
	expected := []byte{
		0x55, 0x55, 0x27, 0x15, 0x15,
		0x02, // units 1
		0x15, // tens 0
		0x15, // S1
		0xD0, // S2 + erase
		0x15, // S3
		0xD0, // S4 + subtitle
		0x5E, // suppress header + update indicator
		0x15, // parallel mode, english
	}
	assert.Equal(t, expected, p[:13])
	for _, b := range p[13:] {
		assert.Equal(t, byte(0x20), b)
	}
}

func TestEncodeHeaderPacketParam(t *testing.T) {
	h := wst.DefaultHeaderParam(3, 0x88)
	h.Erase = false
	h.Subcode = 0x3F7F
	h.Charset = x26.CharsetSwedish
	p := wst.EncodeHeaderPacket(h)

	mag, row, ok := wst.DecodeAddress(p)
	assert.Equal(t, true, ok)
	assert.Equal(t, 3, mag)
	assert.Equal(t, 0, row)

	nybbles := make([]uint8, 8)
	for i := range nybbles {
		nybbles[i], ok = hamming.DecodeNybble(p[5+i])
		assert.Equal(t, true, ok)
	}
	assert.Equal(t, []uint8{0x8, 0x8, 0xF, 0x7, 0xF, 0xB, 0x3, 0x4}, nybbles)
}

func TestEncodeSubtitleEmpty(t *testing.T) {
	e := wst.NewPageEncoder()
	packets := e.EncodeSubtitle(nil)
	assert.Equal(t, 1, len(packets))
	checkPackets(t, packets)
	assert.Equal(t, wst.EncodeHeaderPacket(wst.DefaultHeaderParam(0, 1)), packets[0])
}

func TestEncodeSubtitle(t *testing.T) {
	e := wst.NewPageEncoder()
	packets := e.EncodeSubtitle([]string{"Niklas was here", "Making another row that is longer"})
	assert.Equal(t, 3, len(packets))
	checkPackets(t, packets)

	// 默认从第19行开始
	_, row, _ := wst.DecodeAddress(packets[1])
	assert.Equal(t, 19, row)
	_, row, _ = wst.DecodeAddress(packets[2])
	assert.Equal(t, 20, row)

	payload := packets[1][wst.PrefixSize:]
	for _, b := range payload {
		assert.Equal(t, true, hamming.IsOddParity(b))
	}
	assert.Equal(t, byte(0x0B), payload[0]) // start box
	assert.Equal(t, byte(0xCE), payload[1]) // 'N'
	assert.Equal(t, hamming.OddParity(wst.EndBox), payload[16])
	assert.Equal(t, byte(0x20), payload[39])

	// 幂等
	again := e.EncodeSubtitle([]string{"Niklas was here", "Making another row that is longer"})
	assert.Equal(t, packets, again)
}

func TestEncodeSubtitleEnhancement(t *testing.T) {
	e := wst.NewPageEncoder(func(option *wst.Option) {
		option.Magazine = 8
		option.Page = 0x88
	})
	packets := e.EncodeSubtitle([]string{"Temperature 20°C", "plain"}, func(option *wst.SubtitleOption) {
		option.StartRow = 22
	})
	assert.Equal(t, 4, len(packets))
	checkPackets(t, packets)

	mag, row, _ := wst.DecodeAddress(packets[1])
	assert.Equal(t, 0, mag)
	assert.Equal(t, wst.RowEnhancement, row)
	_, row, _ = wst.DecodeAddress(packets[2])
	assert.Equal(t, 22, row)
	_, row, _ = wst.DecodeAddress(packets[3])
	assert.Equal(t, 23, row)

	x := packets[1][wst.PrefixSize:]
	sap := x26.DecodeTriplet([3]uint8{x[1], x[2], x[3]})
	assert.Equal(t, x26.Triplet{Mode: x26.ModeSetActivePosition, Address: 62}, sap)
	// '°' 在正文第14列，加上start box为第15列
	g2 := x26.DecodeTriplet([3]uint8{x[4], x[5], x[6]})
	assert.Equal(t, x26.Triplet{Mode: x26.ModeG2Character, Address: 15, Data: 0x30}, g2)

	// 显示行中是近似字符（空格）
	assert.Equal(t, byte(0x20), packets[2][wst.PrefixSize+15])
}

func TestEncodeSubtitleTruncate(t *testing.T) {
	e := wst.NewPageEncoder()
	long := "0123456789012345678901234567890123456789ABCDEFGHIJ"
	packets := e.EncodeSubtitle([]string{long})
	assert.Equal(t, 2, len(packets))
	payload := packets[1][wst.PrefixSize:]
	assert.Equal(t, wst.PayloadSize, len(payload))
	assert.Equal(t, hamming.OddParity('7'), payload[38])
	assert.Equal(t, hamming.OddParity(wst.EndBox), payload[39])
}

func TestEncodeSubtitleUnsupported(t *testing.T) {
	e := wst.NewPageEncoder()
	packets := e.EncodeSubtitle([]string{"€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€€"})
	checkPackets(t, packets)

	p := wst.NewPageEncoder(func(option *wst.Option) {
		option.Placeholder = '?'
	})
	packets = p.EncodeSubtitle([]string{"1€"})
	checkPackets(t, packets)
	assert.Equal(t, hamming.OddParity('?'), packets[1][wst.PrefixSize+2])
}

// 配置了替换字符时，每个字符占一个字节，G2 triplet的列地址和显示行中的近似字符对齐
func TestEncodeSubtitlePlaceholderKeepsColumns(t *testing.T) {
	e := wst.NewPageEncoder(func(option *wst.Option) {
		option.Placeholder = ' '
	})
	packets := e.EncodeSubtitle([]string{"€°"})
	assert.Equal(t, 3, len(packets))
	checkPackets(t, packets)

	x := packets[1][wst.PrefixSize:]
	g2 := x26.DecodeTriplet([3]uint8{x[4], x[5], x[6]})
	assert.Equal(t, x26.ModeG2Character, g2.Mode)
	assert.Equal(t, uint8(2), g2.Address)

	payload := packets[2][wst.PrefixSize:]
	assert.Equal(t, hamming.OddParity(wst.StartBox), payload[0])
	assert.Equal(t, hamming.OddParity(' '), payload[1])
	assert.Equal(t, hamming.OddParity(wst.EndBox), payload[3])
	assert.Equal(t, hamming.OddParity(' '), payload[4])
}

func TestEncodeSubtitleNoErase(t *testing.T) {
	e := wst.NewPageEncoder()
	packets := e.EncodeSubtitle([]string{"a"}, func(option *wst.SubtitleOption) {
		option.Erase = false
	})
	s2, ok := hamming.DecodeNybble(packets[0][8])
	assert.Equal(t, true, ok)
	assert.Equal(t, uint8(0), s2)
}

func BenchmarkEncodeSubtitle(b *testing.B) {
	e := wst.NewPageEncoder()
	rows := []string{"Niklas was here", "Making another row that is longer ±"}
	for i := 0; i < b.N; i++ {
		e.EncodeSubtitle(rows)
	}
}
