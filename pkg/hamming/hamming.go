// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package hamming 实现teletext使用的几种差错控制编码
//
// <ETS 300 706> <8.1 Odd parity>      7位数据 + 1位奇校验
// <ETS 300 706> <8.2 Hamming 8/4>     4位数据 + 4位保护
// <ETS 300 706> <8.3 Hamming 24/18>   18位数据 + 6位保护
//
// 只做编码。解码函数只做位的反向提取，不做纠错，用于校验编码结果。
package hamming

// 8/4编码后的值，下标为0~15的原始值
var hamming84Table = [16]uint8{
	0x15, 0x02, 0x49, 0x5E, 0x64, 0x73, 0x38, 0x2F,
	0xD0, 0xC7, 0x8C, 0x9B, 0xA1, 0xB6, 0xFD, 0xEA,
}

// 8/4编码值到原始值的反查表，-1表示不是合法的码字
var hamming84DecodeTable [256]int8

// EncodeNybble 对 nybble 的低4位做8/4编码
func EncodeNybble(nybble uint8) uint8 {
	return hamming84Table[nybble&0x0F]
}

// EncodeByte 对 b 的高4位和低4位分别做8/4编码
//
// @return 第一个字节为高4位的编码，第二个字节为低4位的编码
//
func EncodeByte(b uint8) [2]uint8 {
	return [2]uint8{hamming84Table[b>>4], hamming84Table[b&0x0F]}
}

// DecodeNybble EncodeNybble 的逆操作，不做纠错
//
// @return ok: 如果 b 不是合法码字，返回false
//
func DecodeNybble(b uint8) (nybble uint8, ok bool) {
	v := hamming84DecodeTable[b]
	if v < 0 {
		return 0, false
	}
	return uint8(v), true
}

// Encode2418 对18位的 value 做24/18编码
//
// ---------------------------------------------------
// byte0: c0 c1 b0 c2 b1 b2 b3 c3   (LSB -> MSB)
// byte1: b4 b5 b6 b7 b8 b9 b10 c4
// byte2: b11 b12 b13 b14 b15 b16 b17 c5
// ---------------------------------------------------
// c0~c4 为对应数据位异或后取反，c5 为异或
//
func Encode2418(value uint32) [3]uint8 {
	var b [18]uint8
	for i := range b {
		b[i] = Bit(value, uint(i))
	}

	var c [6]uint8
	c[0] = 1 ^ b[17] ^ b[15] ^ b[13] ^ b[11] ^ b[10] ^ b[8] ^ b[6] ^ b[4] ^ b[3] ^ b[1] ^ b[0]
	c[1] = 1 ^ b[17] ^ b[16] ^ b[13] ^ b[12] ^ b[10] ^ b[9] ^ b[6] ^ b[5] ^ b[3] ^ b[2] ^ b[0]
	c[2] = 1 ^ b[17] ^ b[16] ^ b[15] ^ b[14] ^ b[10] ^ b[9] ^ b[8] ^ b[7] ^ b[3] ^ b[2] ^ b[1]
	c[3] = 1 ^ b[10] ^ b[9] ^ b[8] ^ b[7] ^ b[6] ^ b[5] ^ b[4]
	c[4] = 1 ^ b[17] ^ b[16] ^ b[15] ^ b[14] ^ b[13] ^ b[12] ^ b[11]
	c[5] = b[17] ^ b[14] ^ b[12] ^ b[11] ^ b[10] ^ b[7] ^ b[5] ^ b[4] ^ b[2] ^ b[1] ^ b[0]

	return [3]uint8{
		PackBits(c[0], c[1], b[0], c[2], b[1], b[2], b[3], c[3]),
		PackBits(b[4], b[5], b[6], b[7], b[8], b[9], b[10], c[4]),
		PackBits(b[11], b[12], b[13], b[14], b[15], b[16], b[17], c[5]),
	}
}

// Decode2418 Encode2418 的逆操作，只提取数据位
func Decode2418(t [3]uint8) uint32 {
	bits12to18 := (uint32(t[2]) & Bitmask(7)) << 11
	bits5to11 := (uint32(t[1]) & Bitmask(7)) << 4
	bits2to4 := (uint32(t[0]) & (Bitmask(3) << 4)) >> 3
	bit1 := uint32(Bit(uint32(t[0]), 2))

	return bits12to18 | bits5to11 | bits2to4 | bit1
}

func init() {
	for i := range hamming84DecodeTable {
		hamming84DecodeTable[i] = -1
	}
	for i, v := range hamming84Table {
		hamming84DecodeTable[v] = int8(i)
	}
}
