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
	"time"

	"github.com/gorilla/websocket"
	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

type WebsocketSinkOption struct {
	TimeoutMs int // 握手和写超时，为0时使用 base.SinkWriteTimeoutMs
}

type ModWebsocketSinkOption func(option *WebsocketSinkOption)

// WebsocketSink 每个page发送一个binary message，内容为所有45字节packet首尾相接
type WebsocketSink struct {
	uniqueKey string
	option    WebsocketSinkOption

	conn *websocket.Conn

	disposeOnce sync.Once
}

func NewWebsocketSink(modOptions ...ModWebsocketSinkOption) *WebsocketSink {
	var option WebsocketSinkOption
	for _, fn := range modOptions {
		fn(&option)
	}
	if option.TimeoutMs == 0 {
		option.TimeoutMs = base.SinkWriteTimeoutMs
	}

	uk := base.GenUkWebsocketSink()
	Log.Infof("[%s] lifecycle new websocket sink.", uk)
	return &WebsocketSink{
		uniqueKey: uk,
		option:    option,
	}
}

func (s *WebsocketSink) Dial(url string) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: time.Duration(s.option.TimeoutMs) * time.Millisecond,
		Subprotocols:     []string{base.Op47WebsocketSubprotocol},
	}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return err
	}
	s.conn = conn
	Log.Debugf("[%s] websocket connected. url=%s, subprotocol=%s", s.uniqueKey, url, conn.Subprotocol())
	return nil
}

func (s *WebsocketSink) Send(packets [][]byte) error {
	if s.conn == nil {
		return base.ErrSinkClosed
	}

	size := 0
	for _, p := range packets {
		size += len(p)
	}
	frame := make([]byte, 0, size)
	for _, p := range packets {
		frame = append(frame, p...)
	}

	if err := s.conn.SetWriteDeadline(time.Now().Add(time.Duration(s.option.TimeoutMs) * time.Millisecond)); err != nil {
		return nazaerrors.Wrap(err)
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return nazaerrors.Wrap(err)
	}
	return nil
}

func (s *WebsocketSink) Dispose() error {
	var retErr error
	s.disposeOnce.Do(func() {
		Log.Infof("[%s] lifecycle dispose websocket sink.", s.uniqueKey)
		if s.conn == nil {
			retErr = base.ErrSinkClosed
			return
		}
		deadline := time.Now().Add(time.Duration(s.option.TimeoutMs) * time.Millisecond)
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		retErr = s.conn.Close()
	})
	return retErr
}

func (s *WebsocketSink) UniqueKey() string {
	return s.uniqueKey
}
