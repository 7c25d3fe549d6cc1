// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"io"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

type TeletextMuxerOption struct {
	TransportStreamId uint16
	ProgramNumber     uint16
	PmtPid            uint16
	Pid               uint16 // teletext PES所在的PID，同时作为PCR_PID

	// teletext descriptor 中的内容
	Language string
	Magazine int
	Page     int
}

var defaultTeletextMuxerOption = TeletextMuxerOption{
	TransportStreamId: DefaultTransportStreamId,
	ProgramNumber:     DefaultProgramNumber,
	PmtPid:            PidPmt,
	Pid:               PidTeletext,
	Language:          "eng",
	Magazine:          0,
	Page:              0x01,
}

type ModTeletextMuxerOption func(option *TeletextMuxerOption)

// TeletextMuxer 将teletext packet序列写成单节目的MPEG-TS流
//
// 每个page之前重复写一次PAT和PMT，使得从任意page开始读都可以解析。
// 非并发安全。
//
type TeletextMuxer struct {
	uniqueKey string
	option    TeletextMuxerOption
	w         io.Writer

	pat []byte
	pmt []byte

	patCc uint8
	pmtCc uint8
	cc    uint8

	pageCount int
}

func NewTeletextMuxer(w io.Writer, modOptions ...ModTeletextMuxerOption) *TeletextMuxer {
	option := defaultTeletextMuxerOption
	for _, fn := range modOptions {
		fn(&option)
	}

	_, pat := NewPatSection(option.TransportStreamId, option.ProgramNumber, option.PmtPid).Pack()
	_, pmt := NewPmtSection(option.ProgramNumber, option.Pid, []PmtProgramElement{
		{
			StreamType:  StreamTypePrivateData,
			Pid:         option.Pid,
			Descriptors: []Descriptor{NewTeletextDescriptor(option.Language, option.Magazine, option.Page)},
		},
	}).Pack()

	uk := base.GenUkTeletextMuxer()
	Log.Debugf("[%s] lifecycle new teletext muxer. option=%+v", uk, option)
	return &TeletextMuxer{
		uniqueKey: uk,
		option:    option,
		w:         w,
		pat:       pat,
		pmt:       pmt,
	}
}

// WritePage
//
// @param packets: 45字节的teletext packet，比如 wst.PageEncoder.EncodeSubtitle 的结果
// @param pts:     单位90kHz
//
func (m *TeletextMuxer) WritePage(packets [][]byte, pts uint64) error {
	b, err := m.PackPage(packets, pts)
	if err != nil {
		return err
	}
	if _, err = m.w.Write(b); err != nil {
		return nazaerrors.Wrap(err)
	}
	return nil
}

// PackPage 同 WritePage ，只返回打包结果，不写入
func (m *TeletextMuxer) PackPage(packets [][]byte, pts uint64) ([]byte, error) {
	payload, err := PackTeletextPesPayload(packets)
	if err != nil {
		return nil, err
	}

	m.patCc++
	m.pmtCc++
	out := make([]byte, 0, TsPacketSize*2+len(payload)+TsPacketSize*2)
	out = append(out, PackPsiTsPacket(PidPat, m.patCc, m.pat)...)
	out = append(out, PackPsiTsPacket(m.option.PmtPid, m.pmtCc, m.pmt)...)

	frame := Frame{
		Pts:                 pts,
		Dts:                 pts,
		Cc:                  m.cc,
		Pid:                 m.option.Pid,
		Sid:                 StreamIdPrivateStream1,
		Key:                 true,
		DataAlignment:       true,
		MinHeaderDataLength: TeletextPesHeaderDataLength,
		Raw:                 payload,
	}
	out = append(out, frame.Pack()...)
	m.cc = frame.Cc

	m.pageCount++
	Log.Debugf("[%s] pack page. count=%d, packets=%d, pts=%d, size=%d", m.uniqueKey, m.pageCount, len(packets), pts, len(out))
	return out, nil
}

func (m *TeletextMuxer) UniqueKey() string {
	return m.uniqueKey
}
