// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"io"
	"sync"
	"time"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/sink"
	"github.com/q191201771/lalop47/pkg/wst"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

// Runner 逐个page编码并发送，不负责 sink 的释放
type Runner struct {
	config  *Config
	encoder *wst.PageEncoder
	sink    sink.Sink
	logDump base.LogDump

	disposeOnce sync.Once
	closeChan   chan struct{}
}

func NewRunner(config *Config, s sink.Sink) *Runner {
	pc := config.PageConfig
	return &Runner{
		config: config,
		encoder: wst.NewPageEncoder(func(option *wst.Option) {
			option.Magazine = pc.Magazine
			option.Page = pc.Page
			option.Subcode = pc.Subcode
			option.StartRow = pc.StartRow
			option.DoubleHeight = pc.DoubleHeight
			option.Charset = pc.ParsedCharset()
			option.Placeholder = pc.Placeholder()
		}),
		sink:      s,
		logDump:   base.NewLogDump(Log, config.LogDumpMaxNum),
		closeChan: make(chan struct{}),
	}
}

// Run 读取 input 直到结束，或者 Dispose 被调用
func (r *Runner) Run(input io.Reader) error {
	pages, err := ReadPages(input, r.config.PageConfig.MaxRows())
	if err != nil {
		return nazaerrors.Wrap(err)
	}
	Log.Infof("read pages succ. count=%d", len(pages))

	interval := time.Duration(r.config.PageConfig.PageIntervalMs) * time.Millisecond
	for i, rows := range pages {
		select {
		case <-r.closeChan:
			Log.Infof("runner disposed, stop. sent=%d", i)
			return nil
		default:
		}

		packets := r.encoder.EncodeSubtitle(rows)
		if r.logDump.ShouldDump() {
			r.logDump.OutPackets("page", packets)
		}
		if err = r.sink.Send(packets); err != nil {
			return err
		}
		Log.Debugf("send page succ. index=%d, rows=%d, packets=%d", i, len(rows), len(packets))

		if interval > 0 && i != len(pages)-1 {
			select {
			case <-r.closeChan:
				Log.Infof("runner disposed, stop. sent=%d", i+1)
				return nil
			case <-time.After(interval):
			}
		}
	}
	return nil
}

func (r *Runner) Dispose() {
	r.disposeOnce.Do(func() {
		close(r.closeChan)
	})
}
