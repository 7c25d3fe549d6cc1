// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package hamming

// 以下几个函数的bit位序都是LSB在前，与teletext传输顺序一致。
// nazabits 是MSB在前的流式读写，所以这里单独提供。

// Bit 取 v 的第 i 位，返回0或1
func Bit(v uint32, i uint) uint8 {
	return uint8((v >> i) & 1)
}

// Bitmask 低 size 位全为1，比如 Bitmask(4) 为 0b1111
func Bitmask(size uint) uint32 {
	return (1 << size) - 1
}

// PackBits 将多个bit拼成一个字节，bits[0]为最低位，比如 PackBits(1, 0, 0, 1) 为 0b1001
func PackBits(bits ...uint8) uint8 {
	var ret uint8
	for i, b := range bits {
		ret |= (b & 1) << uint(i)
	}
	return ret
}
