// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package wst

import (
	"github.com/q191201771/lalop47/pkg/hamming"
	"github.com/q191201771/lalop47/pkg/x26"
)

// HeaderParam page header（row 0）的参数
//
// <ETS 300 706> <9.3.1 Page header>
// ----------------------------------------------------------
// page units                 [4b]
// page tens                  [4b]
// S1                         [4b]
// S2                         [3b] + C4 erase page
// S3                         [4b]
// S4                         [2b] + C5 newsflash + C6 subtitle
// C7 C8 C9 C10               [4b] suppress header, update indicator, interrupted sequence, inhibit display
// C11 C12 C13 C14            [4b] magazine serial, national option
// ----------------------------------------------------------
// 以上8个nybble各自做hamming 8/4，后面跟32字节的空格
//
type HeaderParam struct {
	Magazine int
	Page     int
	Subcode  uint16

	Erase               bool // C4
	Newsflash           bool // C5
	Subtitle            bool // C6
	SuppressHeader      bool // C7
	UpdateIndicator     bool // C8
	InterruptedSequence bool // C9
	InhibitDisplay      bool // C10
	MagazineSerial      bool // C11，false表示parallel mode

	Charset x26.Charset // C12~C14
}

// DefaultHeaderParam 字幕page常用的header参数
func DefaultHeaderParam(magazine, page int) HeaderParam {
	return HeaderParam{
		Magazine:        magazine,
		Page:            page,
		Erase:           true,
		Subtitle:        true,
		SuppressHeader:  true,
		UpdateIndicator: true,
		Charset:         x26.CharsetEnglish,
	}
}

// EncodeHeaderPacket 生成45字节的page header packet
func EncodeHeaderPacket(h HeaderParam) []byte {
	out := make([]byte, 0, PacketSize)
	out = append(out, EncodePrefix(h.Magazine, RowHeader)...)

	pageUnits := uint8(h.Page) & 0x0F
	pageTens := (uint8(h.Page) >> 4) & 0x0F

	// <9.3.1.2 Page sub-code>
	s1 := uint8(h.Subcode) & 0x0F
	s2 := uint8(h.Subcode>>4) & 0x07
	s3 := uint8(h.Subcode>>8) & 0x0F
	s4 := uint8(h.Subcode>>12) & 0x03

	// <9.3.1.3 Control bits>
	if h.Erase {
		s2 |= 1 << 3
	}
	if h.Newsflash {
		s4 |= 1 << 2
	}
	if h.Subtitle {
		s4 |= 1 << 3
	}

	var cb1 uint8
	if h.SuppressHeader {
		cb1 |= 1
	}
	if h.UpdateIndicator {
		cb1 |= 1 << 1
	}
	if h.InterruptedSequence {
		cb1 |= 1 << 2
	}
	if h.InhibitDisplay {
		cb1 |= 1 << 3
	}

	var cb2 uint8
	if h.MagazineSerial {
		cb2 |= 1
	}
	cb2 |= h.Charset.NationalOption() << 1

	for _, nybble := range []uint8{pageUnits, pageTens, s1, s2, s3, s4, cb1, cb2} {
		out = append(out, hamming.EncodeNybble(nybble))
	}

	// 空格本身满足奇校验，不需要再做parity
	for len(out) < PacketSize {
		out = append(out, Space)
	}
	return out
}
