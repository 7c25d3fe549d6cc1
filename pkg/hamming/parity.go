// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package hamming

import "math/bits"

// 0~127 加上奇校验位后的值
var oddParityTable [128]uint8

// OddParity 对 b 的低7位加奇校验位（最高位）
func OddParity(b uint8) uint8 {
	return oddParityTable[b&0x7F]
}

// OddParityBytes 对 bs 中每个字节做 OddParity
//
// @return 新申请的内存块，不修改 bs
//
func OddParityBytes(bs []byte) []byte {
	ret := make([]byte, len(bs))
	for i, b := range bs {
		ret[i] = oddParityTable[b&0x7F]
	}
	return ret
}

// IsOddParity 字节中1的个数是否为奇数
func IsOddParity(b uint8) bool {
	return bits.OnesCount8(b)%2 == 1
}

func init() {
	for i := range oddParityTable {
		v := uint8(i)
		if bits.OnesCount8(v)%2 == 0 {
			v |= 0x80
		}
		oddParityTable[i] = v
	}
}
