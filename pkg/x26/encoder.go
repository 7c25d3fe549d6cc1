// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package x26

import (
	"github.com/q191201771/lalop47/pkg/hamming"
	"golang.org/x/text/unicode/norm"
)

// PacketPayloadSize X/26 packet 去掉5字节前缀后的大小：1字节designation code + 13个triplet
const PacketPayloadSize = 1 + TripletsPerPacket*3

type Option struct {
	Charset Charset

	// Placeholder 既不在G0 national subset也不在G2中的非ASCII字符的替换字符
	//
	// 为0时原样保留。注意，原样保留的字符无法用单字节表示，解码器上显示的结果不确定。
	// 并且G2 triplet的列地址按字符计算，一个原样保留的字符编码后占多个字节，
	// 会使同一行后面的近似字符和end box相对triplet的列地址右移。建议配置为空格。
	Placeholder rune
}

var defaultOption = Option{
	Charset:     CharsetEnglish,
	Placeholder: 0,
}

type ModOption func(option *Option)

// Encoder 累积一个page所有行的enhancement指令
//
// 使用方式分两步：先对每一行调用 EncodeRow ，最后调用一次 Finalize 得到所有X/26 packet。
// 每个page使用独立的 Encoder ，不要在多个goroutine间共享。
//
type Encoder struct {
	option Option

	triplets    []Triplet
	unsupported int

	finalized bool
	packets   [][]byte
}

func NewEncoder(modOptions ...ModOption) *Encoder {
	option := defaultOption
	for _, fn := range modOptions {
		fn(&option)
	}
	return &Encoder{
		option: option,
	}
}

// Normalize 转换成NFC形式，使得分解形式的带音调字母也能在映射表中找到
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// EncodeRow 对一行文字做字符映射，需要G2字符的位置追加enhancement指令
//
// @param rowLocation: 该行在屏幕上的行号
//
// @return 映射后的字符串，每个rune的位置与输入一一对应（输入先做NFC）
//
func (e *Encoder) EncodeRow(text string, rowLocation int) string {
	if e.finalized {
		Log.Warnf("encode row after finalize, enhancements of this row are dropped. row=%d", rowLocation)
	}

	row := []rune(Normalize(text))
	subset := e.option.Charset.subset()
	firstEnhancement := true

	for j, r := range row {
		if v, ok := subset[r]; ok {
			row[j] = v
			continue
		}

		if index, ok := LookupG2(r); ok {
			row[j] = g2LatinFallback[index]
			if e.finalized {
				continue
			}
			if firstEnhancement {
				e.triplets = append(e.triplets, Triplet{
					Mode:    ModeSetActivePosition,
					Address: rowAddress(rowLocation),
					Data:    0,
				})
				firstEnhancement = false
			}
			e.triplets = append(e.triplets, Triplet{
				Mode:    ModeG2Character,
				Address: uint8(j),
				Data:    uint8(index + 0x20),
			})
			continue
		}

		if r >= 0x80 {
			e.unsupported++
			if e.option.Placeholder != 0 {
				row[j] = e.option.Placeholder
			}
		}
	}
	return string(row)
}

// Triplets 到目前为止累积的指令，调用方不应修改
func (e *Encoder) Triplets() []Triplet {
	return e.triplets
}

// Unsupported 到目前为止无法映射的非ASCII字符个数
func (e *Encoder) Unsupported() int {
	return e.unsupported
}

// Finalize 将累积的指令打包成X/26 packet
//
// 每个packet 13个triplet，不足的用termination marker填充，最后一个填充的data为0xFF。
// 只在第一次调用时生成，之后调用返回同一份结果。
//
// @return 每个元素为 PacketPayloadSize 字节，不包含5字节前缀
//
func (e *Encoder) Finalize() [][]byte {
	if e.finalized {
		return e.packets
	}
	e.finalized = true

	for i := 0; i*TripletsPerPacket < len(e.triplets); i++ {
		end := (i + 1) * TripletsPerPacket
		if end > len(e.triplets) {
			end = len(e.triplets)
		}
		e.packets = append(e.packets, packPacket(i, e.triplets[i*TripletsPerPacket:end]))
	}
	return e.packets
}

// ----- private -------------------------------------------------------------------------------------------------------

// <ETS 300 706> <Table 27>: address 40 表示第24行，41~63 表示第1~23行
func rowAddress(rowLocation int) uint8 {
	if rowLocation == 24 {
		return 40
	}
	return uint8(40 + rowLocation)
}

func packPacket(packetNumber int, triplets []Triplet) []byte {
	out := make([]byte, 0, PacketPayloadSize)
	out = append(out, hamming.EncodeNybble(uint8(packetNumber)))

	for _, t := range triplets {
		b := t.Encode()
		out = append(out, b[:]...)
	}

	fillers := TripletsPerPacket - len(triplets)
	for i := 1; i <= fillers; i++ {
		data := terminationDataSpace
		if i == fillers {
			data = terminationDataFinal
		}
		b := Triplet{Mode: ModeTerminationMarker, Address: terminationAddress, Data: data}.Encode()
		out = append(out, b[:]...)
	}
	return out
}
