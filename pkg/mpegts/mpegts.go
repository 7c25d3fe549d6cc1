// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package mpegts 将teletext packet按EN 300 472封装成PES，再切分成MPEG-TS
package mpegts

const (
	TsPacketSize        = 188
	TsPacketPayloadSize = TsPacketSize - 4

	syncByte uint8 = 0x47
)

const (
	PidPat      uint16 = 0
	PidPmt      uint16 = 0x1000
	PidTeletext uint16 = 0x100
)

// <iso13818-1.pdf> <Table 2-29 Stream type assignments> <page 66/174>
const (
	// StreamTypePrivateData PES packets containing private data，DVB teletext/subtitle都使用这个
	StreamTypePrivateData uint8 = 0x06
)

// <iso13818-1.pdf> <Table 2-18-Stream_id assignments> <page 52/174>
const (
	StreamIdPrivateStream1 uint8 = 0xBD
)

const (
	DefaultProgramNumber     uint16 = 1
	DefaultTransportStreamId uint16 = 1
)

// PCR和PTS之间的固定延迟，单位90kHz，也即700毫秒
const delay uint64 = 63000
