// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package sink

import (
	"sync"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/mpegts"
)

// DefaultPtsIntervalMs 两个page之间的PTS间隔
const DefaultPtsIntervalMs = 2000

// TsFileSink 将page按EN 300 472封装后写入.ts文件
type TsFileSink struct {
	uniqueKey string
	config    Config

	fw    mpegts.FileWriter
	muxer *mpegts.TeletextMuxer
	clock *ptsClock

	disposeOnce sync.Once
}

func NewTsFileSink(config Config) *TsFileSink {
	uk := base.GenUkTsFileSink()
	Log.Infof("[%s] lifecycle new ts file sink. filename=%s", uk, config.Filename)
	return &TsFileSink{
		uniqueKey: uk,
		config:    config,
		clock:     newPtsClock(config.PtsIntervalMs),
	}
}

func (s *TsFileSink) Create(filename string) error {
	if err := s.fw.Create(filename); err != nil {
		return err
	}
	s.muxer = mpegts.NewTeletextMuxer(&s.fw, teletextMuxerModOption(s.config))
	return nil
}

func (s *TsFileSink) Send(packets [][]byte) error {
	if s.muxer == nil {
		return base.ErrSinkClosed
	}
	return s.muxer.WritePage(packets, s.clock.next())
}

func (s *TsFileSink) Dispose() error {
	var retErr error
	s.disposeOnce.Do(func() {
		Log.Infof("[%s] lifecycle dispose ts file sink. filename=%s", s.uniqueKey, s.fw.Name())
		if s.muxer == nil {
			retErr = base.ErrSinkClosed
			return
		}
		retErr = s.fw.Dispose()
	})
	return retErr
}

func (s *TsFileSink) UniqueKey() string {
	return s.uniqueKey
}

// ----- private -------------------------------------------------------------------------------------------------------

// ptsClock 按固定间隔生成PTS，单位90kHz
type ptsClock struct {
	intervalMs int
	count      uint64
}

func newPtsClock(intervalMs int) *ptsClock {
	if intervalMs <= 0 {
		intervalMs = DefaultPtsIntervalMs
	}
	return &ptsClock{intervalMs: intervalMs}
}

func (c *ptsClock) next() uint64 {
	pts := c.count * uint64(c.intervalMs) * 90
	c.count++
	return pts
}

func teletextMuxerModOption(config Config) mpegts.ModTeletextMuxerOption {
	return func(option *mpegts.TeletextMuxerOption) {
		if config.Pid != 0 {
			option.Pid = config.Pid
		}
		if config.Language != "" {
			option.Language = config.Language
		}
		option.Magazine = config.Magazine
		option.Page = config.Page
	}
}
