// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/naza/pkg/nazabits"
)

// -----------------------------------------------------------
// <iso13818-1.pdf>
// <2.4.3.6 PES packet> <page 49/174>
// <Table E.1 - PES packet header example> <page 142/174>
// <F.0.2 PES packet> <page 144/174>
// packet_start_code_prefix  [24b] *** always 0x00, 0x00, 0x01
// stream_id                 [8b]  *
// PES_packet_length         [16b] **
// '10'                      [2b]
// PES_scrambling_control    [2b]
// PES_priority              [1b]
// data_alignment_indicator  [1b]
// copyright                 [1b]
// original_or_copy          [1b]  *
// PTS_DTS_flags             [2b]
// ESCR_flag                 [1b]
// ES_rate_flag              [1b]
// DSM_trick_mode_flag       [1b]
// additional_copy_info_flag [1b]
// PES_CRC_flag              [1b]
// PES_extension_flag        [1b]  *
// PES_header_data_length    [8b]  *
// -----------------------------------------------------------
type Pes struct {
	pscp       uint32
	sid        uint8
	ppl        uint16
	pad1       uint8
	ptsDtsFlag uint8
	pad2       uint8
	phdl       uint8
	pts        uint64
	dts        uint64
}

// ParsePes
//
// @return length: PES Header的长度，也即负载的起始位置
//
func ParsePes(b []byte) (pes Pes, length int, err error) {
	if len(b) < 9 {
		return pes, 0, base.ErrShortBuffer
	}

	br := nazabits.NewBitReader(b)
	pes.pscp, _ = br.ReadBits32(24)
	pes.sid, _ = br.ReadBits8(8)
	pes.ppl, _ = br.ReadBits16(16)

	pes.pad1, _ = br.ReadBits8(8)
	pes.ptsDtsFlag, _ = br.ReadBits8(2)
	pes.pad2, _ = br.ReadBits8(6)
	pes.phdl, _ = br.ReadBits8(8)

	if pes.pscp != 1 {
		return pes, 0, base.ErrMpegts
	}
	length = 9 + int(pes.phdl)
	if length > len(b) {
		return pes, 0, base.ErrShortBuffer
	}

	if pes.ptsDtsFlag&0x2 != 0 && length >= 14 {
		_, pes.pts = readPts(b[9:])
	}
	if pes.ptsDtsFlag&0x1 != 0 && length >= 19 {
		_, pes.dts = readPts(b[14:])
	} else {
		pes.dts = pes.pts
	}
	return
}

func (pes *Pes) StreamId() uint8 {
	return pes.sid
}

// PacketLength PES_packet_length
func (pes *Pes) PacketLength() uint16 {
	return pes.ppl
}

func (pes *Pes) DataAlignment() bool {
	return pes.pad1&0x04 != 0
}

func (pes *Pes) HeaderDataLength() uint8 {
	return pes.phdl
}

// Pts 包含打包时加上的固定延迟
func (pes *Pes) Pts() uint64 {
	return pes.pts
}

func (pes *Pes) Dts() uint64 {
	return pes.dts
}

// read pts or dts
func readPts(b []byte) (fb uint8, pts uint64) {
	fb = b[0] >> 4
	pts |= uint64((b[0]>>1)&0x07) << 30
	pts |= (uint64(b[1])<<8 | uint64(b[2])) >> 1 << 15
	pts |= (uint64(b[3])<<8 | uint64(b[4])) >> 1
	return
}
