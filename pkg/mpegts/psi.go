// Copyright 2023, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazabits"
)

// PsiId
const (
	TsPsiIdPas = 0x00 // program_association_section
	TsPsiIdCas = 0x01 // conditional_access_section (CA_section)
	TsPsiIdPms = 0x02 // TS_program_map_section
)

const (
	DescriptorTagISO639LanguageAndAudioType = 0xa
	DescriptorTagStreamIdentifier           = 0x52
	DescriptorTagSubtitling                 = 0x59
	DescriptorTagTeletext                   = 0x56
	DescriptorTagVBIData                    = 0x45
	DescriptorTagVBITeletext                = 0x46
)

// <EN 300 468> <Table 94: Teletext descriptor>
const (
	TeletextTypeInitialPage                 uint8 = 0x01
	TeletextTypeSubtitlePage                uint8 = 0x02
	TeletextTypeAdditionalInformationPage   uint8 = 0x03
	TeletextTypeProgrammeSchedulePage       uint8 = 0x04
	TeletextTypeHearingImpairedSubtitlePage uint8 = 0x05
)

type PsiSection struct {
	pointerFileld uint8
	sectionData   PsiSectionData
}

type PsiSectionData struct {
	header  PsiTableHeader
	section PsiTableSyntaxSection
	patData PatSpecificData
	pmtData PmtSpecificData
}

type PsiTableHeader struct {
	tableId                uint8
	sectionSyntaxIndicator uint8
	sectionLength          uint16
}

type PsiTableSyntaxSection struct {
	tableIdExtension     uint16
	versionNumber        uint8
	currentNextIndicator uint8
	sectionNumber        uint8
	lastSectionNumber    uint8
}

type PatSpecificData struct {
	pes []PatProgramElement
}

type PmtSpecificData struct {
	pcrPid            uint16
	programInfoLength uint16
	pes               []PmtProgramElement
}

type Descriptor struct {
	Tag      uint8
	Teletext DescriptorTeletext
}

// DescriptorTeletext
//
// <EN 300 468> <6.2.43 Teletext descriptor>
// -----loop-----
// ISO_639_language_code    [24b]
// teletext_type            [5b]
// teletext_magazine_number [3b]
// teletext_page_number     [8b]
// --------------
type DescriptorTeletext struct {
	Items []DescriptorTeletextItem
}

type DescriptorTeletextItem struct {
	Language string // ISO 639-2，3个字母
	Type     uint8
	Magazine uint8 // 0~7，0表示magazine 8
	Page     uint8 // 两个十六进制数字，比如0x88
}

// NewTeletextDescriptor 只包含一个字幕page的teletext descriptor
func NewTeletextDescriptor(language string, magazine int, page int) Descriptor {
	return Descriptor{
		Tag: DescriptorTagTeletext,
		Teletext: DescriptorTeletext{
			Items: []DescriptorTeletextItem{
				{
					Language: language,
					Type:     TeletextTypeSubtitlePage,
					Magazine: uint8(magazine) & 0x07,
					Page:     uint8(page),
				},
			},
		},
	}
}

func NewPsi() *PsiSection {
	return &PsiSection{
		pointerFileld: 0x00,
	}
}

// NewPatSection 只包含一个program的PAT
func NewPatSection(transportStreamId uint16, programNumber uint16, pmtPid uint16) *PsiSection {
	psi := NewPsi()
	psi.sectionData.header.tableId = TsPsiIdPas
	psi.sectionData.header.sectionSyntaxIndicator = 1
	psi.sectionData.section.tableIdExtension = transportStreamId
	psi.sectionData.section.currentNextIndicator = 1
	psi.sectionData.patData.pes = []PatProgramElement{
		{pn: programNumber, pmpid: pmtPid},
	}
	return psi
}

func NewPmtSection(programNumber uint16, pcrPid uint16, elements []PmtProgramElement) *PsiSection {
	psi := NewPsi()
	psi.sectionData.header.tableId = TsPsiIdPms
	psi.sectionData.header.sectionSyntaxIndicator = 1
	psi.sectionData.section.tableIdExtension = programNumber
	psi.sectionData.section.currentNextIndicator = 1
	psi.sectionData.pmtData.pcrPid = pcrPid
	psi.sectionData.pmtData.pes = elements
	return psi
}

// Pack
//
// @return 第一个返回值为第二个返回值的长度，内容从pointer_field开始，CRC_32结尾
//
func (psi *PsiSection) Pack() (int, []byte) {
	sectionLength := psi.calcPsiSectionLength()
	psiSection := make([]byte, 1+3+sectionLength)
	bw := nazabits.NewBitWriter(psiSection)

	bw.WriteBits8(8, psi.pointerFileld)
	psi.writePsiTableHeader(&bw)
	psi.writePsiTableSyntaxSection(&bw)

	crc := CalcCrc32(0xffffffff, psiSection[1:len(psiSection)-4])
	bele.BePutUint32(psiSection[len(psiSection)-4:], crc)

	return len(psiSection), psiSection
}

// PackPsiTsPacket 将一个section放入单独的TS packet，剩余部分用0xFF填充
//
// section必须以pointer_field开头，并且不超过184字节
//
func PackPsiTsPacket(pid uint16, cc uint8, section []byte) []byte {
	packet := make([]byte, TsPacketSize)
	wpos := packTsHeader(packet, pid, true, cc)
	wpos += copy(packet[wpos:], section)
	for ; wpos < TsPacketSize; wpos++ {
		packet[wpos] = 0xFF
	}
	return packet
}

// ----- private -------------------------------------------------------------------------------------------------------

func (psi *PsiSection) writePsiTableHeader(bw *nazabits.BitWriter) {
	bw.WriteBits8(8, psi.sectionData.header.tableId)
	bw.WriteBit(psi.sectionData.header.sectionSyntaxIndicator)
	bw.WriteBit(0)
	bw.WriteBits8(2, 0xff)

	psi.sectionData.header.sectionLength = psi.calcPsiSectionLength()
	bw.WriteBits16(12, psi.sectionData.header.sectionLength)
}

func (psi *PsiSection) writePsiTableSyntaxSection(bw *nazabits.BitWriter) {
	bw.WriteBits16(16, psi.sectionData.section.tableIdExtension)
	bw.WriteBits8(2, 0xff)
	bw.WriteBits8(5, psi.sectionData.section.versionNumber)
	bw.WriteBit(psi.sectionData.section.currentNextIndicator)
	bw.WriteBits8(8, psi.sectionData.section.sectionNumber)
	bw.WriteBits8(8, psi.sectionData.section.lastSectionNumber)

	switch psi.sectionData.header.tableId {
	case TsPsiIdPas:
		psi.writePatSection(bw)
	case TsPsiIdPms:
		psi.writePmtSection(bw)
	}
}

func (psi *PsiSection) calcPsiSectionLength() (length uint16) {
	// Table ID extension(16 bits)+Reserved bits(2 bits)+Version number(5 bits)+Current next Indicator(1 bit)+Section number(8 bits)+Last section number(8 bits)
	length += 5

	switch psi.sectionData.header.tableId {
	case TsPsiIdPas:
		length += uint16(4 * len(psi.sectionData.patData.pes))
	case TsPsiIdPms:
		length += psi.calcPmtSectionLength()
	}

	length += 4 //crc32
	return
}

func (psi *PsiSection) calcPmtSectionLength() (length uint16) {
	// Reserved bits(3 bits)+PCR PID(13 bits)+Reserved bits(4 bits)+Program info length(12 bits)
	length = 4

	for _, pe := range psi.sectionData.pmtData.pes {
		length += 5
		length += calcDescriptorsLength(pe.Descriptors)
	}
	return
}

func (psi *PsiSection) writePatSection(bw *nazabits.BitWriter) {
	for _, pe := range psi.sectionData.patData.pes {
		bw.WriteBits16(16, pe.pn)
		bw.WriteBits8(3, 0xff)
		bw.WriteBits16(13, pe.pmpid)
	}
}

func (psi *PsiSection) writePmtSection(bw *nazabits.BitWriter) {
	bw.WriteBits8(3, 0xff)
	bw.WriteBits16(13, psi.sectionData.pmtData.pcrPid)
	bw.WriteBits8(4, 0xff)
	bw.WriteBits16(12, psi.sectionData.pmtData.programInfoLength)

	for _, pe := range psi.sectionData.pmtData.pes {
		bw.WriteBits8(8, pe.StreamType)
		bw.WriteBits8(3, 0xff)
		bw.WriteBits16(13, pe.Pid)
		writeDescriptorsWithLength(bw, pe.Descriptors)
	}
}

func calcDescriptorsLength(ds []Descriptor) uint16 {
	length := uint16(0)
	for _, d := range ds {
		length += 2 // tag and length
		length += uint16(calcDescriptorLength(d))
	}
	return length
}

func calcDescriptorLength(d Descriptor) uint8 {
	switch d.Tag {
	case DescriptorTagTeletext, DescriptorTagVBITeletext:
		return uint8(5 * len(d.Teletext.Items))
	}
	return 0
}

func writeDescriptorsWithLength(bw *nazabits.BitWriter, ds []Descriptor) {
	bw.WriteBits8(4, 0xff)
	bw.WriteBits16(12, calcDescriptorsLength(ds))

	for _, d := range ds {
		bw.WriteBits8(8, d.Tag)
		bw.WriteBits8(8, calcDescriptorLength(d))

		switch d.Tag {
		case DescriptorTagTeletext, DescriptorTagVBITeletext:
			writeDescriptorTeletext(bw, d.Teletext)
		}
	}
}

func writeDescriptorTeletext(bw *nazabits.BitWriter, d DescriptorTeletext) {
	for _, item := range d.Items {
		lang := []byte(item.Language + "   ")
		for _, b := range lang[:3] {
			bw.WriteBits8(8, b)
		}
		bw.WriteBits8(5, item.Type)
		bw.WriteBits8(3, item.Magazine)
		bw.WriteBits8(8, item.Page)
	}
}
