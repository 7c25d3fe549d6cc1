// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package sink_test

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/mpegts"
	"github.com/q191201771/lalop47/pkg/sink"
	"github.com/q191201771/lalop47/pkg/wst"
	"github.com/q191201771/naza/pkg/assert"
)

func encodePage() [][]byte {
	return wst.NewPageEncoder().EncodeSubtitle([]string{"Niklas was here", "Making another row that is longer"})
}

func expectedApply(rangeStr string, packets [][]byte) string {
	items := make([]string, len(packets))
	for i, p := range packets {
		items[i] = base64.StdEncoding.EncodeToString(p)
	}
	return "APPLY " + rangeStr + " OP47 " + strings.Join(items, " ") + " \r\n"
}

func TestBuildApplyCommand(t *testing.T) {
	packets := [][]byte{{0x55, 0x55, 0x27}, {0x01}}
	assert.Equal(t, "APPLY 1-301 OP47 VVUn AQ== \r\n", sink.BuildApplyCommand("1-301", packets))
	assert.Equal(t, "APPLY 5 OP47  \r\n", sink.BuildApplyCommand("5", nil))

	packets = encodePage()
	assert.Equal(t, expectedApply("1-301", packets), sink.BuildApplyCommand(base.SinkOp47DefaultRange, packets))
}

// startInserter 模拟一个插入器，读取一行命令后回复 reply
func startInserter(t *testing.T, reply string) (string, <-chan string) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Equal(t, nil, err)
	t.Cleanup(func() { _ = ln.Close() })

	lines := make(chan string, 8)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- line
			if reply != "" {
				_, _ = conn.Write([]byte(reply))
			}
		}
	}()
	return ln.Addr().String(), lines
}

func TestOp47Client(t *testing.T) {
	addr, lines := startInserter(t, "")

	c := sink.NewOp47Client(func(option *sink.Op47ClientOption) {
		option.Range = "2-10"
	})
	err := c.Send(nil)
	assert.Equal(t, base.ErrSinkClosed, err)

	err = c.Dial(addr)
	assert.Equal(t, nil, err)

	packets := encodePage()
	err = c.Send(packets)
	assert.Equal(t, nil, err)

	select {
	case line := <-lines:
		assert.Equal(t, expectedApply("2-10", packets), line)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout")
	}

	assert.Equal(t, nil, c.Dispose())
}

func TestOp47ClientReply(t *testing.T) {
	addr, _ := startInserter(t, "OK\r\n")
	s, err := sink.NewSink(sink.Config{
		Type:      sink.TypeOp47,
		Addr:      addr,
		ReadReply: true,
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, s.Send(encodePage()))
	assert.Equal(t, nil, s.Dispose())

	addr, _ = startInserter(t, "ERR invalid payload\r\n")
	c := sink.NewOp47Client(func(option *sink.Op47ClientOption) {
		option.ReadReply = true
	})
	assert.Equal(t, nil, c.Dial(addr))
	err = c.Send(encodePage())
	assert.Equal(t, true, errors.Is(err, base.ErrSinkUnexpectedReply))
	assert.Equal(t, nil, c.Dispose())
}

func TestWebsocketSink(t *testing.T) {
	messages := make(chan []byte, 4)
	upgrader := websocket.Upgrader{
		Subprotocols: []string{base.Op47WebsocketSubprotocol},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, b, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.BinaryMessage {
				messages <- b
			}
		}
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	s, err := sink.NewSink(sink.Config{
		Type: sink.TypeWebsocket,
		Url:  url,
	})
	assert.Equal(t, nil, err)

	packets := encodePage()
	assert.Equal(t, nil, s.Send(packets))

	select {
	case b := <-messages:
		assert.Equal(t, len(packets)*wst.PacketSize, len(b))
		assert.Equal(t, bytes.Join(packets, nil), b)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout")
	}

	assert.Equal(t, nil, s.Dispose())
	// 重复调用不报错
	assert.Equal(t, nil, s.Dispose())
}

func TestTsFileSink(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.ts")
	s, err := sink.NewSink(sink.Config{
		Type:          sink.TypeTs,
		Filename:      filename,
		Language:      "swe",
		PtsIntervalMs: 1000,
	})
	assert.Equal(t, nil, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, nil, s.Send(encodePage()))
	}
	assert.Equal(t, nil, s.Dispose())

	b, err := os.ReadFile(filename)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(b)%mpegts.TsPacketSize)
	// 每个page: PAT + PMT + 2个PES packet
	assert.Equal(t, 3*4*mpegts.TsPacketSize, len(b))

	// 第二个page的PES从第6个TS packet开始，前面是4字节TS Header和8字节adaptation
	pes, _, err := mpegts.ParsePes(b[6*mpegts.TsPacketSize+12:])
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(90000+63000), pes.Pts())
}

func TestStdoutSink(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewStdoutSink(&buf)
	packets := encodePage()
	assert.Equal(t, nil, s.Send(packets))
	assert.Equal(t, nil, s.Dispose())

	line := strings.TrimSuffix(buf.String(), "\n")
	items := strings.Split(line, " ")
	assert.Equal(t, len(packets), len(items))
	for i, item := range items {
		b, err := base64.StdEncoding.DecodeString(item)
		assert.Equal(t, nil, err)
		assert.Equal(t, packets[i], b)
	}
}

func TestNewSinkUnknown(t *testing.T) {
	_, err := sink.NewSink(sink.Config{Type: "carrier-pigeon"})
	assert.Equal(t, true, errors.Is(err, base.ErrSinkUnknownType))

	s, err := sink.NewSink(sink.Config{Type: sink.TypeStdout})
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, s.Dispose())
}
