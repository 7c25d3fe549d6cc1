// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package wst 将字幕文字编码成World System Teletext packet
//
// 每个packet固定45字节：
//
// -----------------------------------------------------
// clock run-in               [2B] always 0x55 0x55  <6.1>
// framing code               [1B] always 0x27       <6.2>
// magazine and packet address[2B] hamming 8/4       <7.1.2>
// data                       [40B]
// -----------------------------------------------------
package wst

import (
	"github.com/q191201771/lalop47/pkg/hamming"
)

const (
	PacketSize  = 45
	PrefixSize  = 5
	PayloadSize = PacketSize - PrefixSize

	ClockRunIn  uint8 = 0x55
	FramingCode uint8 = 0x27
)

const (
	RowHeader      = 0
	RowEnhancement = 26 // X/26
)

// <ETS 300 706> <Table 26: Spacing attributes>
const (
	EndBox   uint8 = 0x0A
	StartBox uint8 = 0x0B
	Space    uint8 = 0x20
)

// EncodePrefix 生成5字节前缀
//
// magazine 取低3位，row（packet number）取低5位：
//   byte4 = hamming(magazine + (row的最低位 << 3))
//   byte5 = hamming(row >> 1)
//
func EncodePrefix(magazine int, row int) []byte {
	x := uint8(magazine) & 0x07
	y := uint8(row) & 0x1F

	return []byte{
		ClockRunIn, ClockRunIn,
		FramingCode,
		hamming.EncodeNybble(x + ((y & 1) << 3)),
		hamming.EncodeNybble(y >> 1),
	}
}

// DecodeAddress EncodePrefix 的逆操作，用于校验
func DecodeAddress(packet []byte) (magazine int, row int, ok bool) {
	if len(packet) < PrefixSize {
		return 0, 0, false
	}
	a, ok1 := hamming.DecodeNybble(packet[3])
	b, ok2 := hamming.DecodeNybble(packet[4])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return int(a & 0x07), int(b)<<1 | int(a>>3), true
}
