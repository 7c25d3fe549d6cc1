// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/logic"
	"github.com/q191201771/lalop47/pkg/sink"
	"github.com/q191201771/lalop47/pkg/wst"
	"github.com/q191201771/lalop47/pkg/x26"
	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/naza/pkg/nazalog"
)

func TestLoadConfDefault(t *testing.T) {
	config, err := logic.LoadConf("op47enc.conf.json", []byte("{}"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, config.PageConfig.Magazine)
	assert.Equal(t, 0x01, config.PageConfig.Page)
	assert.Equal(t, 19, config.PageConfig.StartRow)
	assert.Equal(t, "english", config.PageConfig.Charset)
	assert.Equal(t, x26.CharsetEnglish, config.PageConfig.ParsedCharset())
	assert.Equal(t, rune(0), config.PageConfig.Placeholder())
	assert.Equal(t, sink.TypeStdout, config.SinkConfig.Type)
	assert.Equal(t, "1-301", config.SinkConfig.Range)
	assert.Equal(t, base.SinkWriteTimeoutMs, config.SinkConfig.TimeoutMs)
	assert.Equal(t, sink.DefaultPtsIntervalMs, config.SinkConfig.PtsIntervalMs)
	assert.Equal(t, nazalog.LevelDebug, config.LogConfig.Level)
	assert.Equal(t, true, config.LogConfig.IsToStdout)
}

func TestLoadConfJson(t *testing.T) {
	raw := `{
  "conf_version": "v0.1.1",
  "page": {
    "magazine": 8,
    "page": 136,
    "start_row": 1,
    "charset": "swedish",
    "unsupported_placeholder": "?"
  },
  "sink": {
    "type": "op47",
    "addr": "10.0.0.1:5255",
    "range": "1-50"
  },
  "log": {
    "level": 2,
    "is_to_stdout": false
  }
}`
	config, err := logic.LoadConf("op47enc.conf.json", []byte(raw))
	assert.Equal(t, nil, err)
	assert.Equal(t, 8, config.PageConfig.Magazine)
	assert.Equal(t, 0x88, config.PageConfig.Page)
	// 显式配置时不使用默认值
	assert.Equal(t, 1, config.PageConfig.StartRow)
	assert.Equal(t, logic.MaxRowsPerPage, config.PageConfig.MaxRows())
	assert.Equal(t, x26.CharsetSwedish, config.PageConfig.ParsedCharset())
	assert.Equal(t, '?', config.PageConfig.Placeholder())
	assert.Equal(t, sink.TypeOp47, config.SinkConfig.Type)
	assert.Equal(t, "10.0.0.1:5255", config.SinkConfig.Addr)
	assert.Equal(t, "1-50", config.SinkConfig.Range)
	assert.Equal(t, 8, config.SinkConfig.Magazine)
	assert.Equal(t, 0x88, config.SinkConfig.Page)
	assert.Equal(t, nazalog.LevelInfo, config.LogConfig.Level)
	assert.Equal(t, false, config.LogConfig.IsToStdout)
	assert.Equal(t, true, config.LogConfig.IsRotateDaily)
}

func TestLoadConfYaml(t *testing.T) {
	raw := `
page:
  page: 100
  start_row: 21
sink:
  type: ts
  filename: /tmp/out.ts
  language: swe
`
	config, err := logic.LoadConf("op47enc.conf.yaml", []byte(raw))
	assert.Equal(t, nil, err)
	assert.Equal(t, 100, config.PageConfig.Page)
	assert.Equal(t, 21, config.PageConfig.StartRow)
	assert.Equal(t, "english", config.PageConfig.Charset)
	assert.Equal(t, sink.TypeTs, config.SinkConfig.Type)
	assert.Equal(t, "/tmp/out.ts", config.SinkConfig.Filename)
	assert.Equal(t, "swe", config.SinkConfig.Language)
	assert.Equal(t, "1-301", config.SinkConfig.Range)

	config, err = logic.LoadConf("empty.yml", []byte(""))
	assert.Equal(t, nil, err)
	assert.Equal(t, 19, config.PageConfig.StartRow)

	_, err = logic.LoadConf("bad.yaml", []byte("page: [1, 2"))
	assert.Equal(t, true, err != nil)
}

func TestLoadConfInvalid(t *testing.T) {
	golden := []string{
		`{"page": {"charset": "klingon"}}`,
		`{"page": {"unsupported_placeholder": "ab"}}`,
		`{"page": {"page_interval_ms": -1}}`,
		`{"page": {"start_row": 0}}`,
		`{"page": {"start_row": 25}}`,
		`{"sink": {"type": "fax"}}`,
		`{"sink": {"type": "websocket"}}`,
	}
	for _, raw := range golden {
		_, err := logic.LoadConf("x.json", []byte(raw))
		assert.Equal(t, true, errors.Is(err, base.ErrConfigInvalid), raw)
	}

	_, err := logic.LoadConf("x.json", []byte("{"))
	assert.Equal(t, true, err != nil)
}

func TestReadPages(t *testing.T) {
	pages, err := logic.ReadPages(strings.NewReader("first row\nsecond row\n\n\n  \nthird\r\nfourth\r\n"), logic.MaxRowsPerPage)
	assert.Equal(t, nil, err)
	assert.Equal(t, [][]string{{"first row", "second row"}, {"third", "fourth"}}, pages)

	pages, err = logic.ReadPages(strings.NewReader(""), logic.MaxRowsPerPage)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(pages))

	pages, err = logic.ReadPages(strings.NewReader(strings.Repeat("row\n", 30)), 100)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(pages))
	assert.Equal(t, logic.MaxRowsPerPage, len(pages[0]))

	pages, err = logic.ReadPages(strings.NewReader(strings.Repeat("row\n", 8)), 6)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"row", "row", "row", "row", "row", "row"}, pages[0])
}

type recordSink struct {
	pages    [][][]byte
	disposed bool
}

func (s *recordSink) Send(packets [][]byte) error {
	s.pages = append(s.pages, packets)
	return nil
}

func (s *recordSink) Dispose() error {
	s.disposed = true
	return nil
}

func TestRunner(t *testing.T) {
	config, err := logic.LoadConf("x.json", []byte(`{"page": {"magazine": 2, "page": 136}}`))
	assert.Equal(t, nil, err)

	s := &recordSink{}
	r := logic.NewRunner(config, s)
	err = r.Run(strings.NewReader("Niklas was here\nMaking another row that is longer\n\nbye\n"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(s.pages))
	assert.Equal(t, 3, len(s.pages[0]))
	assert.Equal(t, 2, len(s.pages[1]))
	assert.Equal(t, false, s.disposed)

	mag, row, ok := wst.DecodeAddress(s.pages[0][1])
	assert.Equal(t, true, ok)
	assert.Equal(t, 2, mag)
	assert.Equal(t, 19, row)
	assert.Equal(t, wst.EncodeHeaderPacket(wst.DefaultHeaderParam(2, 0x88)), s.pages[1][0])
}

// 从第19行开始只能放下6行，其余的行不能落到非显示行或者page header上
func TestRunnerRowsBeyondDisplay(t *testing.T) {
	config, err := logic.LoadConf("x.json", []byte(`{"page": {"start_row": 19}}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, config.PageConfig.MaxRows())

	s := &recordSink{}
	r := logic.NewRunner(config, s)
	err = r.Run(strings.NewReader("r1\nr2\nr3\nr4\nr5\nr6\nr7\nr8\n"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(s.pages))
	assert.Equal(t, 7, len(s.pages[0]))
	for i, p := range s.pages[0][1:] {
		_, row, ok := wst.DecodeAddress(p)
		assert.Equal(t, true, ok)
		assert.Equal(t, 19+i, row)
	}
}

func TestRunnerDispose(t *testing.T) {
	config, err := logic.LoadConf("x.json", []byte(`{"page": {"page_interval_ms": 60000}}`))
	assert.Equal(t, nil, err)

	s := &recordSink{}
	r := logic.NewRunner(config, s)
	r.Dispose()
	r.Dispose()
	err = r.Run(strings.NewReader("a\n\nb\n"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(s.pages))
}
