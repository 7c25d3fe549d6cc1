// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

//go:build srt
// +build srt

package sink

import (
	"net"
	"strconv"
	"sync"

	"github.com/haivision/srtgo"
	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/mpegts"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

// srt live模式下每次最多发送7个TS packet
const srtLivePayloadSize = 7 * mpegts.TsPacketSize

// SrtSink 以caller模式连接SRT listener，发送EN 300 472 TS流
//
// 依赖libsrt，需要使用 -tags srt 编译
//
type SrtSink struct {
	uniqueKey string
	config    Config

	socket *srtgo.SrtSocket
	muxer  *mpegts.TeletextMuxer
	clock  *ptsClock

	disposeOnce sync.Once
}

func newSrtSink(config Config) (Sink, error) {
	s := NewSrtSink(config)
	if err := s.Dial(config.Addr); err != nil {
		return nil, err
	}
	return s, nil
}

func NewSrtSink(config Config) *SrtSink {
	uk := base.GenUkSrtSink()
	Log.Infof("[%s] lifecycle new srt sink. addr=%s", uk, config.Addr)
	return &SrtSink{
		uniqueKey: uk,
		config:    config,
		clock:     newPtsClock(config.PtsIntervalMs),
	}
}

func (s *SrtSink) Dial(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return err
	}

	options := make(map[string]string)
	options["transtype"] = "live"
	options["mode"] = "caller"

	socket := srtgo.NewSrtSocket(host, uint16(port), options)
	if err = socket.Connect(); err != nil {
		socket.Close()
		return err
	}
	s.socket = socket
	s.muxer = mpegts.NewTeletextMuxer(s, teletextMuxerModOption(s.config))
	return nil
}

// Write 实现io.Writer，供 mpegts.TeletextMuxer 使用
func (s *SrtSink) Write(b []byte) (int, error) {
	n := 0
	for n < len(b) {
		end := n + srtLivePayloadSize
		if end > len(b) {
			end = len(b)
		}
		wn, err := s.socket.Write(b[n:end])
		if err != nil {
			return n, err
		}
		n += wn
	}
	return n, nil
}

func (s *SrtSink) Send(packets [][]byte) error {
	if s.muxer == nil {
		return base.ErrSinkClosed
	}
	if err := s.muxer.WritePage(packets, s.clock.next()); err != nil {
		return nazaerrors.Wrap(err)
	}
	return nil
}

func (s *SrtSink) Dispose() error {
	var retErr error
	s.disposeOnce.Do(func() {
		Log.Infof("[%s] lifecycle dispose srt sink.", s.uniqueKey)
		if s.socket == nil {
			retErr = base.ErrSinkClosed
			return
		}
		s.socket.Close()
	})
	return retErr
}

func (s *SrtSink) UniqueKey() string {
	return s.uniqueKey
}
