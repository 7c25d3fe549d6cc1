// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package sink

import (
	"bufio"
	"encoding/base64"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/naza/pkg/connection"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

type Op47ClientOption struct {
	// Range APPLY命令作用的范围，为空时使用 base.SinkOp47DefaultRange
	Range string

	// ReadReply 为true时，每次发送后读取一行应答，应答以ERR开头时返回错误
	ReadReply bool

	// TimeoutMs 连接、读、写的超时，为0时使用 base.SinkWriteTimeoutMs
	TimeoutMs int
}

var defaultOp47ClientOption = Op47ClientOption{
	Range:     base.SinkOp47DefaultRange,
	ReadReply: false,
	TimeoutMs: base.SinkWriteTimeoutMs,
}

type ModOp47ClientOption func(option *Op47ClientOption)

// Op47Client 通过TCP向OP-47插入器发送文本命令
//
// 每个page一行：
//   APPLY <range> OP47 <base64 packet> <base64 packet> ... \r\n
//
type Op47Client struct {
	uniqueKey string
	option    Op47ClientOption

	conn connection.Connection
	r    *bufio.Reader

	disposeOnce sync.Once
}

func NewOp47Client(modOptions ...ModOp47ClientOption) *Op47Client {
	option := defaultOp47ClientOption
	for _, fn := range modOptions {
		fn(&option)
	}
	if option.Range == "" {
		option.Range = base.SinkOp47DefaultRange
	}
	if option.TimeoutMs == 0 {
		option.TimeoutMs = base.SinkWriteTimeoutMs
	}

	uk := base.GenUkOp47Client()
	Log.Infof("[%s] lifecycle new op47 client. range=%s", uk, option.Range)
	return &Op47Client{
		uniqueKey: uk,
		option:    option,
	}
}

func (c *Op47Client) Dial(addr string) error {
	Log.Debugf("[%s] > tcp connect. addr=%s", c.uniqueKey, addr)
	conn, err := net.DialTimeout("tcp", addr, time.Duration(c.option.TimeoutMs)*time.Millisecond)
	if err != nil {
		return err
	}
	c.conn = connection.New(conn, func(option *connection.Option) {
		option.WriteChanFullBehavior = connection.WriteChanFullBehaviorBlock
	})
	c.conn.ModWriteTimeoutMs(c.option.TimeoutMs)
	c.conn.ModReadTimeoutMs(c.option.TimeoutMs)
	c.r = bufio.NewReader(c.conn)
	Log.Debugf("[%s] < tcp connect. laddr=%s, raddr=%s", c.uniqueKey, conn.LocalAddr().String(), conn.RemoteAddr().String())
	return nil
}

func (c *Op47Client) Send(packets [][]byte) error {
	if c.conn == nil {
		return base.ErrSinkClosed
	}

	cmd := BuildApplyCommand(c.option.Range, packets)
	Log.Debugf("[%s] > W APPLY. packets=%d, len=%d", c.uniqueKey, len(packets), len(cmd))
	if _, err := c.conn.Write([]byte(cmd)); err != nil {
		return nazaerrors.Wrap(err)
	}

	if !c.option.ReadReply {
		return nil
	}
	line, err := c.r.ReadString('\n')
	if err != nil {
		return nazaerrors.Wrap(err)
	}
	line = strings.TrimSpace(line)
	Log.Debugf("[%s] < R reply. %s", c.uniqueKey, line)
	if strings.HasPrefix(strings.ToUpper(line), "ERR") {
		return base.NewErrSinkUnexpectedReply(line)
	}
	return nil
}

func (c *Op47Client) Dispose() error {
	var retErr error
	c.disposeOnce.Do(func() {
		Log.Infof("[%s] lifecycle dispose op47 client.", c.uniqueKey)
		if c.conn == nil {
			retErr = base.ErrSinkClosed
			return
		}
		retErr = c.conn.Close()
	})
	return retErr
}

func (c *Op47Client) UniqueKey() string {
	return c.uniqueKey
}

// BuildApplyCommand 拼接一行APPLY命令，packet之间用空格分隔，行尾为空格加CRLF
func BuildApplyCommand(rangeStr string, packets [][]byte) string {
	var sb strings.Builder
	sb.WriteString("APPLY ")
	sb.WriteString(rangeStr)
	sb.WriteString(" OP47 ")
	for i, p := range packets {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(base64.StdEncoding.EncodeToString(p))
	}
	sb.WriteString(" \r\n")
	return sb.String()
}
