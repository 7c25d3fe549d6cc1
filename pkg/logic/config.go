// Copyright 2019, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/sink"
	"github.com/q191201771/lalop47/pkg/x26"
	"github.com/q191201771/naza/pkg/nazajson"
	"github.com/q191201771/naza/pkg/nazalog"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFilenameJson = "./conf/op47enc.conf.json"
	defaultConfigFilenameYaml = "./conf/op47enc.conf.yaml"
)

var DefaultConfFilenameList = []string{
	defaultConfigFilenameJson,
	defaultConfigFilenameYaml,
	filepath.FromSlash("../" + defaultConfigFilenameJson),
	filepath.FromSlash("../../" + defaultConfigFilenameJson),
}

type Config struct {
	ConfVersion string `json:"conf_version"`

	PageConfig PageConfig     `json:"page"`
	SinkConfig sink.Config    `json:"sink"`
	LogConfig  nazalog.Option `json:"log"`

	// LogDumpMaxNum debug级别下，hex打印前多少个page的packet
	LogDumpMaxNum int `json:"log_dump_max_num"`
}

type PageConfig struct {
	Magazine     int    `json:"magazine"`
	Page         int    `json:"page"` // json中只能写十进制，比如0x88写成136
	Subcode      uint16 `json:"subcode"`
	StartRow     int    `json:"start_row"`
	DoubleHeight bool   `json:"double_height"`
	Charset      string `json:"charset"`

	// UnsupportedPlaceholder 为空时无法映射的字符原样保留，否则替换成该字符（只能是一个字符）
	UnsupportedPlaceholder string `json:"unsupported_placeholder"`

	// PageIntervalMs 发送相邻两个page之间的间隔
	PageIntervalMs int `json:"page_interval_ms"`
}

// MaxRowsPerPage 一个page最多的行数，超过的部分被丢弃
//
// 可显示的行为1~24，行0是page header，25~31为非显示行（26为X/26 enhancement）
const MaxRowsPerPage = 24

// LoadConf 解析配置内容，没有配置的字段使用默认值
//
// @param filename: 只用于根据扩展名判断格式，.yaml和.yml按YAML解析，其他按JSON解析
//
func LoadConf(filename string, rawContent []byte) (*Config, error) {
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if rawContent, err = yamlToJson(rawContent); err != nil {
			return nil, err
		}
	}

	var config Config
	if err = json.Unmarshal(rawContent, &config); err != nil {
		return nil, err
	}

	j, err := nazajson.New(rawContent)
	if err != nil {
		return nil, err
	}

	// 配置不存在时，设置默认值
	if !j.Exist("page.page") {
		config.PageConfig.Page = 0x01
	}
	if !j.Exist("page.start_row") {
		config.PageConfig.StartRow = 19
	}
	if !j.Exist("page.charset") {
		config.PageConfig.Charset = x26.CharsetEnglish.String()
	}
	if !j.Exist("sink.type") {
		config.SinkConfig.Type = sink.TypeStdout
	}
	if !j.Exist("sink.addr") {
		config.SinkConfig.Addr = "127.0.0.1:5255"
	}
	if !j.Exist("sink.range") {
		config.SinkConfig.Range = base.SinkOp47DefaultRange
	}
	if !j.Exist("sink.timeout_ms") {
		config.SinkConfig.TimeoutMs = base.SinkWriteTimeoutMs
	}
	if !j.Exist("sink.filename") {
		config.SinkConfig.Filename = "./op47.ts"
	}
	if !j.Exist("sink.language") {
		config.SinkConfig.Language = "eng"
	}
	if !j.Exist("sink.pts_interval_ms") {
		config.SinkConfig.PtsIntervalMs = sink.DefaultPtsIntervalMs
	}
	if !j.Exist("log_dump_max_num") {
		config.LogDumpMaxNum = 4
	}
	if !j.Exist("log.level") {
		config.LogConfig.Level = nazalog.LevelDebug
	}
	if !j.Exist("log.filename") {
		config.LogConfig.Filename = "./logs/op47enc.log"
	}
	if !j.Exist("log.is_to_stdout") {
		config.LogConfig.IsToStdout = true
	}
	if !j.Exist("log.is_rotate_daily") {
		config.LogConfig.IsRotateDaily = true
	}
	if !j.Exist("log.short_file_flag") {
		config.LogConfig.ShortFileFlag = true
	}
	if !j.Exist("log.assert_behavior") {
		config.LogConfig.AssertBehavior = nazalog.AssertError
	}

	config.SinkConfig.Magazine = config.PageConfig.Magazine
	config.SinkConfig.Page = config.PageConfig.Page

	if err = config.check(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ParsedCharset 调用前需保证配置已通过 LoadConf 检查
func (c *PageConfig) ParsedCharset() x26.Charset {
	cs, _ := x26.ParseCharset(c.Charset)
	return cs
}

// MaxRows 从 StartRow 开始到最后一个可显示行，最多能放下的行数
func (c *PageConfig) MaxRows() int {
	return MaxRowsPerPage - c.StartRow + 1
}

func (c *PageConfig) Placeholder() rune {
	if c.UnsupportedPlaceholder == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.UnsupportedPlaceholder)
	return r
}

// ----- private -------------------------------------------------------------------------------------------------------

func (c *Config) check() error {
	if _, ok := x26.ParseCharset(c.PageConfig.Charset); !ok {
		return base.NewErrConfigInvalid("page.charset", c.PageConfig.Charset)
	}
	if utf8.RuneCountInString(c.PageConfig.UnsupportedPlaceholder) > 1 {
		return base.NewErrConfigInvalid("page.unsupported_placeholder", c.PageConfig.UnsupportedPlaceholder)
	}
	if c.PageConfig.StartRow < 1 || c.PageConfig.StartRow > MaxRowsPerPage {
		return base.NewErrConfigInvalid("page.start_row", c.PageConfig.StartRow)
	}
	if c.PageConfig.PageIntervalMs < 0 {
		return base.NewErrConfigInvalid("page.page_interval_ms", c.PageConfig.PageIntervalMs)
	}
	switch c.SinkConfig.Type {
	case sink.TypeOp47, sink.TypeWebsocket, sink.TypeSrt, sink.TypeTs, sink.TypeStdout:
	default:
		return base.NewErrConfigInvalid("sink.type", c.SinkConfig.Type)
	}
	if c.SinkConfig.Type == sink.TypeWebsocket && c.SinkConfig.Url == "" {
		return base.NewErrConfigInvalid("sink.url", c.SinkConfig.Url)
	}
	return nil
}

// yamlToJson 先解析成通用结构再转成JSON，使得YAML和JSON共用同一套默认值逻辑
func yamlToJson(rawContent []byte) ([]byte, error) {
	var v map[string]interface{}
	if err := yaml.Unmarshal(rawContent, &v); err != nil {
		return nil, err
	}
	if v == nil {
		v = make(map[string]interface{})
	}
	return json.Marshal(v)
}
