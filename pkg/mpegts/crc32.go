// Copyright 2023, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

// CRC-32/MPEG-2
//
// <iso13818-1.pdf> <Annex A CRC Decoder Model>
// poly 0x04C11DB7，不做输入输出反转，初始值0xFFFFFFFF，结果不取反。
// 注意，标准库hash/crc32只支持反转形式的多项式，不能直接用。
//
const crc32MpegPoly uint32 = 0x04C11DB7

var crc32MpegTable [256]uint32

// CalcCrc32 首次计算时 crc 传入0xFFFFFFFF，结果按大端写入section尾部
func CalcCrc32(crc uint32, buffer []byte) uint32 {
	for _, b := range buffer {
		crc = (crc << 8) ^ crc32MpegTable[byte(crc>>24)^b]
	}
	return crc
}

func init() {
	for i := 0; i < 256; i++ {
		c := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if c&0x80000000 != 0 {
				c = (c << 1) ^ crc32MpegPoly
			} else {
				c <<= 1
			}
		}
		crc32MpegTable[i] = c
	}
}
