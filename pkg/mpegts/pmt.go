// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazabits"
)

// Pmt
//
// ----------------------------------------
// Program Map Table
// <iso13818-1.pdf> <2.4.4.8> <page 64/174>
// table_id                 [8b]  *
// section_syntax_indicator [1b]
// 0                        [1b]
// reserved                 [2b]
// section_length           [12b] **
// program_number           [16b] **
// reserved                 [2b]
// version_number           [5b]
// current_next_indicator   [1b]  *
// section_number           [8b]  *
// last_section_number      [8b]  *
// reserved                 [3b]
// PCR_PID                  [13b] **
// reserved                 [4b]
// program_info_length      [12b] **
// -----loop-----
// stream_type              [8b]  *
// reserved                 [3b]
// elementary_PID           [13b] **
// reserved                 [4b]
// ES_info_length           [12b] **
// descriptor()
// --------------
// CRC32                    [32b] ****
// ----------------------------------------
//
type Pmt struct {
	tid             uint8
	ssi             uint8
	sl              uint16
	pn              uint16
	vn              uint8
	cni             uint8
	sn              uint8
	lsn             uint8
	pp              uint16
	pil             uint16
	ProgramElements []PmtProgramElement
	crc32           uint32
}

type PmtProgramElement struct {
	StreamType  uint8
	Pid         uint16
	Length      uint16 // ES_info_length，打包时根据 Descriptors 计算，不需要填
	Descriptors []Descriptor
}

// ParsePmt
//
// @param b: 从table_id开始，不包含pointer_field
//
func ParsePmt(b []byte) (pmt Pmt, err error) {
	if len(b) < 16 {
		return pmt, base.ErrShortBuffer
	}

	br := nazabits.NewBitReader(b)
	pmt.tid, _ = br.ReadBits8(8)
	pmt.ssi, _ = br.ReadBits8(1)
	_, _ = br.ReadBits8(3)
	pmt.sl, _ = br.ReadBits16(12)
	end := 3 + int(pmt.sl) - 4 // 不包含CRC32
	if end+4 > len(b) || end < 12 {
		return pmt, base.ErrShortBuffer
	}
	pmt.pn, _ = br.ReadBits16(16)
	_, _ = br.ReadBits8(2)
	pmt.vn, _ = br.ReadBits8(5)
	pmt.cni, _ = br.ReadBits8(1)
	pmt.sn, _ = br.ReadBits8(8)
	pmt.lsn, _ = br.ReadBits8(8)
	_, _ = br.ReadBits8(3)
	pmt.pp, _ = br.ReadBits16(13)
	_, _ = br.ReadBits8(4)
	pmt.pil, _ = br.ReadBits16(12)

	pos := 12 + int(pmt.pil)
	for pos+5 <= end {
		var ppe PmtProgramElement
		ppe.StreamType = b[pos]
		ppe.Pid = bele.BeUint16(b[pos+1:]) & 0x1FFF
		ppe.Length = bele.BeUint16(b[pos+3:]) & 0x0FFF
		pos += 5
		if pos+int(ppe.Length) > end {
			return pmt, base.ErrShortBuffer
		}
		ppe.Descriptors = parseDescriptors(b[pos : pos+int(ppe.Length)])
		pos += int(ppe.Length)
		pmt.ProgramElements = append(pmt.ProgramElements, ppe)
	}
	pmt.crc32 = bele.BeUint32(b[end:])

	return
}

func (pmt *Pmt) PcrPid() uint16 {
	return pmt.pp
}

func (pmt *Pmt) SearchPid(pid uint16) *PmtProgramElement {
	for i := range pmt.ProgramElements {
		if pmt.ProgramElements[i].Pid == pid {
			return &pmt.ProgramElements[i]
		}
	}
	return nil
}

// ----- private -------------------------------------------------------------------------------------------------------

// parseDescriptors 只解析teletext descriptor，其他的只保留tag
func parseDescriptors(b []byte) (ds []Descriptor) {
	pos := 0
	for pos+2 <= len(b) {
		d := Descriptor{Tag: b[pos]}
		length := int(b[pos+1])
		pos += 2
		if pos+length > len(b) {
			Log.Warnf("descriptor too short. tag=0x%02x, length=%d, remain=%d", d.Tag, length, len(b)-pos)
			return
		}

		switch d.Tag {
		case DescriptorTagTeletext, DescriptorTagVBITeletext:
			for i := pos; i+5 <= pos+length; i += 5 {
				d.Teletext.Items = append(d.Teletext.Items, DescriptorTeletextItem{
					Language: string(b[i : i+3]),
					Type:     b[i+3] >> 3,
					Magazine: b[i+3] & 0x07,
					Page:     b[i+4],
				})
			}
		}
		ds = append(ds, d)
		pos += length
	}
	return
}
