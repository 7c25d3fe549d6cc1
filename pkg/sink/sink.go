// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package sink 将编码好的teletext packet发送出去
package sink

import (
	"github.com/q191201771/lalop47/pkg/base"
)

// Sink 每次 Send 一个page的全部packet（每个45字节）
//
// 非并发安全，调用方在一个goroutine中使用
//
type Sink interface {
	Send(packets [][]byte) error
	Dispose() error
}

const (
	TypeOp47      = "op47"
	TypeWebsocket = "websocket"
	TypeSrt       = "srt"
	TypeTs        = "ts"
	TypeStdout    = "stdout"
)

type Config struct {
	Type string `json:"type"`

	// op47, srt
	Addr      string `json:"addr"`
	Range     string `json:"range"`
	ReadReply bool   `json:"read_reply"`
	TimeoutMs int    `json:"timeout_ms"`

	// websocket
	Url string `json:"url"`

	// ts, srt
	Filename      string `json:"filename"`
	Pid           uint16 `json:"pid"`
	Language      string `json:"language"`
	PtsIntervalMs int    `json:"pts_interval_ms"`

	// 由page配置填充，写入PMT的teletext descriptor
	Magazine int `json:"-"`
	Page     int `json:"-"`
}

// NewSink 根据 Config.Type 创建并连接对应的sink
func NewSink(config Config) (Sink, error) {
	switch config.Type {
	case TypeOp47:
		c := NewOp47Client(func(option *Op47ClientOption) {
			option.Range = config.Range
			option.ReadReply = config.ReadReply
			option.TimeoutMs = config.TimeoutMs
		})
		if err := c.Dial(config.Addr); err != nil {
			return nil, err
		}
		return c, nil
	case TypeWebsocket:
		s := NewWebsocketSink(func(option *WebsocketSinkOption) {
			option.TimeoutMs = config.TimeoutMs
		})
		if err := s.Dial(config.Url); err != nil {
			return nil, err
		}
		return s, nil
	case TypeSrt:
		return newSrtSink(config)
	case TypeTs:
		s := NewTsFileSink(config)
		if err := s.Create(config.Filename); err != nil {
			return nil, err
		}
		return s, nil
	case TypeStdout:
		return NewStdoutSink(nil), nil
	}
	return nil, base.NewErrSinkUnknownType(config.Type)
}
