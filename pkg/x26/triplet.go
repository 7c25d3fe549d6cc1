// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package x26 字符映射以及X/26 enhancement packet的生成
//
// 不能直接用G0表示的字符，在显示行中写入一个近似字符，
// 同时生成X/26 triplet，让支持enhancement的解码器替换成G2中的正确字符。
package x26

import (
	"fmt"

	"github.com/q191201771/lalop47/pkg/hamming"
)

// <ETS 300 706> <12.3.1 Packet X/26 coding>
// <ETS 300 706> <Table 27: Function of Row Address triplets>
// <ETS 300 706> <Table 28: Function of Column Address triplets>
const (
	ModeSetActivePosition uint8 = 0x04 // row address group，address 40~63
	ModeG2Character       uint8 = 0x0F // column address group，address 0~39
	ModeTerminationMarker uint8 = 0x1F // row address group，address 0x3F
)

const (
	// TripletsPerPacket 每个X/26 packet固定携带13个triplet
	TripletsPerPacket = 13

	terminationAddress   uint8 = 0x3F
	terminationDataSpace uint8 = 0x00
	terminationDataFinal uint8 = 0xFF
)

// Triplet 一条enhancement指令
//
// ----------------------------------
// address [6b] bit 0~5
// mode    [5b] bit 6~10
// data    [7b] bit 11~17
// ----------------------------------
type Triplet struct {
	Mode    uint8
	Address uint8
	Data    uint8
}

// Pack 将三个字段拼成18位的值，各字段超出位宽的部分被丢弃
func Pack(mode, address, data uint8) uint32 {
	return (uint32(address) & hamming.Bitmask(6)) |
		((uint32(mode) & hamming.Bitmask(5)) << 6) |
		((uint32(data) & hamming.Bitmask(7)) << 11)
}

func Unpack(v uint32) Triplet {
	return Triplet{
		Mode:    uint8((v >> 6) & hamming.Bitmask(5)),
		Address: uint8(v & hamming.Bitmask(6)),
		Data:    uint8((v >> 11) & hamming.Bitmask(7)),
	}
}

func (t Triplet) Pack() uint32 {
	return Pack(t.Mode, t.Address, t.Data)
}

// Encode 24/18编码后的3字节
func (t Triplet) Encode() [3]uint8 {
	return hamming.Encode2418(t.Pack())
}

// DecodeTriplet Triplet.Encode 的逆操作，不做纠错
func DecodeTriplet(b [3]uint8) Triplet {
	return Unpack(hamming.Decode2418(b))
}

func (t Triplet) String() string {
	return fmt.Sprintf("mode=0x%02x, address=%d, data=0x%02x", t.Mode, t.Address, t.Data)
}
