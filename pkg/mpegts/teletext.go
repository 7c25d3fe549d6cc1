// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"math/bits"

	"github.com/q191201771/lalop47/pkg/base"
)

// <EN 300 472> <4.3 Syntax for PES data field>
// ---------------------------------------------
// data_identifier           [8b]  0x10~0x1F EBU data
// -----loop-----
// data_unit_id              [8b]  0x02 non-subtitle, 0x03 subtitle, 0xFF stuffing
// data_unit_length          [8b]  always 0x2C
// reserved_future_use       [2b]  '11'
// field_parity              [1b]
// line_offset               [5b]
// framing_code              [8b]  always 0xE4
// magazine_and_packet_address [16b]
// data_block                [320b]
// --------------
// ---------------------------------------------
// framing_code之后的字段都是按位反转后的teletext数据（teletext在线路上是LSB先发送）。
//
const (
	DataIdentifierEbuTeletext uint8 = 0x10

	DataUnitIdNonSubtitle uint8 = 0x02
	DataUnitIdSubtitle    uint8 = 0x03
	DataUnitIdStuffing    uint8 = 0xFF

	DataUnitLength uint8 = 0x2C
	DataUnitSize         = 2 + int(DataUnitLength)

	// TeletextPesHeaderDataLength <EN 300 472> <4.2> PES_header_data_length固定为0x24
	TeletextPesHeaderDataLength uint8 = 0x24

	teletextFramingCode uint8 = 0xE4

	teletextPacketSize = 45 // 同 wst.PacketSize
)

// teletext插入的VBI行范围，<EN 300 472> <Table 3>
const (
	lineOffsetFirst = 7
	lineOffsetLast  = 22
)

// PackTeletextDataUnit 将一个45字节的teletext packet打包成46字节的data unit
//
// 丢弃2字节clock run-in，framing code写固定的0xE4，其余42字节按位反转。
//
// @param lineOffset: 只取低5位，0表示未指定
//
func PackTeletextDataUnit(packet []byte, fieldParity bool, lineOffset uint8) ([]byte, error) {
	if len(packet) != teletextPacketSize {
		return nil, base.NewErrMpegtsInvalidTeletextPacket(0, len(packet))
	}

	out := make([]byte, DataUnitSize)
	out[0] = DataUnitIdSubtitle
	out[1] = DataUnitLength
	out[2] = 0xC0 | (lineOffset & 0x1F)
	if fieldParity {
		out[2] |= 0x20
	}
	out[3] = teletextFramingCode
	for i, b := range packet[3:] {
		out[4+i] = bits.Reverse8(b)
	}
	return out, nil
}

// PackTeletextPesPayload 生成teletext PES的负载（PES_packet_data_byte部分）
//
// 依次分配VBI行：第一场7~22行，然后第二场7~22行，循环。
// 末尾补充stuffing data unit，使得45字节PES Header加负载的总长度为184的整数倍。
//
func PackTeletextPesPayload(packets [][]byte) ([]byte, error) {
	n := len(packets) + 1 // data_identifier和PES Header合起来正好占一个data unit大小
	if r := n % 4; r != 0 {
		n += 4 - r
	}

	out := make([]byte, 0, 1+(n-1)*DataUnitSize)
	out = append(out, DataIdentifierEbuTeletext)

	lines := lineOffsetLast - lineOffsetFirst + 1
	for i, packet := range packets {
		fieldParity := (i/lines)%2 == 0
		lineOffset := uint8(lineOffsetFirst + i%lines)
		unit, err := PackTeletextDataUnit(packet, fieldParity, lineOffset)
		if err != nil {
			return nil, base.NewErrMpegtsInvalidTeletextPacket(i, len(packet))
		}
		out = append(out, unit...)
	}

	for i := len(packets) + 1; i < n; i++ {
		out = append(out, DataUnitIdStuffing, DataUnitLength)
		for j := 0; j < int(DataUnitLength); j++ {
			out = append(out, 0xFF)
		}
	}
	return out, nil
}

// ParseTeletextPesPayload PackTeletextPesPayload 的逆操作，还原出45字节的teletext packet
//
// stuffing以及不认识的data unit被跳过。
//
func ParseTeletextPesPayload(b []byte) ([][]byte, error) {
	if len(b) < 1 {
		return nil, base.ErrShortBuffer
	}
	if b[0] < 0x10 || b[0] > 0x1F {
		return nil, base.ErrMpegts
	}

	var out [][]byte
	pos := 1
	for pos+2 <= len(b) {
		id := b[pos]
		length := int(b[pos+1])
		if pos+2+length > len(b) {
			return out, base.ErrShortBuffer
		}
		unit := b[pos+2 : pos+2+length]
		pos += 2 + length

		if (id != DataUnitIdSubtitle && id != DataUnitIdNonSubtitle) || length != int(DataUnitLength) {
			continue
		}

		packet := make([]byte, teletextPacketSize)
		packet[0] = 0x55
		packet[1] = 0x55
		packet[2] = bits.Reverse8(unit[1])
		for i, v := range unit[2:] {
			packet[3+i] = bits.Reverse8(v)
		}
		out = append(out, packet)
	}
	return out, nil
}
