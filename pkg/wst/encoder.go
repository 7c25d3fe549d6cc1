// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package wst

import (
	"github.com/q191201771/lalop47/pkg/hamming"
	"github.com/q191201771/lalop47/pkg/x26"
)

// MaxTextColumns 一行40列，去掉首尾的box标记后剩下的列数
const MaxTextColumns = PayloadSize - 2

type Option struct {
	Magazine int // 0~7，0表示magazine 8
	Page     int // 0x00~0xFF
	Subcode  uint16

	// StartRow 字幕第一行在屏幕上的行号
	StartRow int

	// DoubleHeight 暂未使用
	DoubleHeight bool

	Charset x26.Charset

	// Placeholder 无法映射的非ASCII字符的替换字符，为0时原样保留，见 x26.Option
	//
	// 原样保留时该行的列会错位，所以推荐配置为空格
	Placeholder rune
}

var defaultOption = Option{
	Magazine:     0,
	Page:         0x01,
	Subcode:      0,
	StartRow:     19,
	DoubleHeight: false,
	Charset:      x26.CharsetEnglish,
	Placeholder:  0,
}

type ModOption func(option *Option)

type SubtitleOption struct {
	StartRow int
	Erase    bool
}

type SubtitleModOption func(option *SubtitleOption)

// PageEncoder 只持有不可变的配置，可以在多个goroutine间共享
//
// 每次 EncodeSubtitle 内部使用独立的 x26.Encoder
//
type PageEncoder struct {
	option Option
}

func NewPageEncoder(modOptions ...ModOption) *PageEncoder {
	option := defaultOption
	for _, fn := range modOptions {
		fn(&option)
	}
	return &PageEncoder{
		option: option,
	}
}

func (e *PageEncoder) Option() Option {
	return e.option
}

// EncodeHeaderPacket 使用 PageEncoder 的配置生成page header
func (e *PageEncoder) EncodeHeaderPacket(erase bool) []byte {
	h := DefaultHeaderParam(e.option.Magazine, e.option.Page)
	h.Subcode = e.option.Subcode
	h.Erase = erase
	h.Charset = e.option.Charset
	return EncodeHeaderPacket(h)
}

// EncodeSubtitle 将一页字幕编码成teletext packet序列
//
// @param rows: 每个元素为一行文字，超过 MaxTextColumns 的部分被截断，不会折行
//
// @return 顺序为 [header, X/26..., row...]，每个packet都是 PacketSize 字节。
//         X/26放在显示行之前，保证解码器在处理显示行之前已经收到enhancement数据。
//
func (e *PageEncoder) EncodeSubtitle(rows []string, modOptions ...SubtitleModOption) [][]byte {
	so := SubtitleOption{
		StartRow: e.option.StartRow,
		Erase:    true,
	}
	for _, fn := range modOptions {
		fn(&so)
	}

	header := e.EncodeHeaderPacket(so.Erase)
	if len(rows) == 0 {
		return [][]byte{header}
	}

	enc := x26.NewEncoder(func(option *x26.Option) {
		option.Charset = e.option.Charset
		option.Placeholder = e.option.Placeholder
	})

	rowPackets := make([][]byte, 0, len(rows))
	for i, text := range rows {
		row := (so.StartRow + i) & 0x1F
		mapped := enc.EncodeRow(boxRow(text), row)

		packet := make([]byte, 0, PacketSize)
		packet = append(packet, EncodePrefix(e.option.Magazine, row)...)
		packet = append(packet, hamming.OddParityBytes(fitPayload([]byte(mapped)))...)
		rowPackets = append(rowPackets, packet)
	}

	if n := enc.Unsupported(); n != 0 {
		Log.Warnf("unsupported characters in subtitle. count=%d, placeholder=%q", n, e.option.Placeholder)
	}

	enhancements := enc.Finalize()
	out := make([][]byte, 0, 1+len(enhancements)+len(rowPackets))
	out = append(out, header)
	for _, payload := range enhancements {
		packet := make([]byte, 0, PacketSize)
		packet = append(packet, EncodePrefix(e.option.Magazine, RowEnhancement)...)
		packet = append(packet, payload...)
		out = append(out, packet)
	}
	out = append(out, rowPackets...)

	Log.Debugf("encode subtitle. magazine=%d, page=0x%02x, rows=%d, enhancements=%d",
		e.option.Magazine, e.option.Page, len(rows), len(enhancements))
	return out
}

// ----- private -------------------------------------------------------------------------------------------------------

// boxRow 截断到 MaxTextColumns ，前后加box标记，再用空格补齐40列
func boxRow(text string) string {
	runes := []rune(x26.Normalize(text))
	if len(runes) > MaxTextColumns {
		runes = runes[:MaxTextColumns]
	}

	row := make([]rune, 0, PayloadSize)
	row = append(row, rune(StartBox))
	row = append(row, runes...)
	row = append(row, rune(EndBox))
	for len(row) < PayloadSize {
		row = append(row, rune(Space))
	}
	return string(row)
}

// fitPayload 原样保留的多字节字符可能使长度超过40字节，这里截断或补齐到 PayloadSize
func fitPayload(b []byte) []byte {
	if len(b) >= PayloadSize {
		return b[:PayloadSize]
	}
	for len(b) < PayloadSize {
		b = append(b, Space)
	}
	return b
}
