// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

// Frame 一个PES的负载，用于打包成mpegts格式的数据
//
type Frame struct {
	Pts uint64 // =(毫秒 * 90)
	Dts uint64
	Cc  uint8 // continuity_counter of TS Header

	// PID of PES Header
	// teletext mpegts.PidTeletext
	Pid uint16

	// stream_id of PES Header
	// teletext mpegts.StreamIdPrivateStream1
	Sid uint8

	// Key 为true时，首个packet携带PCR，random_access_indicator置1
	Key bool

	// DataAlignment data_alignment_indicator，EN 300 472要求为1
	DataAlignment bool

	// MinHeaderDataLength PES_header_data_length的最小值，PTS/DTS之后不足的部分用0xFF（stuffing_byte）填充
	//
	// teletext固定使用 TeletextPesHeaderDataLength ，使得整个PES header为45字节
	MinHeaderDataLength uint8

	// teletext 格式为data_identifier加若干data unit，见 PackTeletextPesPayload
	Raw []byte
}

// Pack PES负载转换为mpegts流
//
// 注意，内部会增加 Frame.Cc 的值.
//
// @return: 内存块为独立申请，调度结束后，内部不再持有
//
func (frame *Frame) Pack() []byte {
	bufLen := len(frame.Raw) * 2 // 预分配一块足够大的内存
	if bufLen < 1024 {
		bufLen = 1024
	}
	buf := make([]byte, bufLen)

	lpos := 0              // 当前输入帧的处理位置
	rpos := len(frame.Raw) // 当前输入帧大小
	first := true          // 是否为帧的首个packet的标准
	packetPosAtBuf := 0    // 当前输出packet相对于整个输出内存块的位置

	for lpos != rpos {
		if packetPosAtBuf+TsPacketSize > len(buf) {
			Log.Warnf("buffer too short. frame size=%d, buf=%d, packetPosAtBuf=%d", len(frame.Raw), len(buf), packetPosAtBuf)
			newBuf := make([]byte, packetPosAtBuf+TsPacketSize)
			copy(newBuf, buf)
			buf = newBuf
		}

		packet := buf[packetPosAtBuf : packetPosAtBuf+TsPacketSize] // 当前输出packet
		packetPosAtBuf += TsPacketSize

		frame.Cc++
		wpos := packTsHeader(packet, frame.Pid, first, frame.Cc)

		if first {
			if frame.Key {
				wpos += packPcrAdaptation(packet, frame.Dts-delay)
			}
			wpos += frame.packPesHeader(packet[wpos:], rpos)
			first = false
		}

		// 把帧的内容切割放入packet中
		bodySize := TsPacketSize - wpos // 当前TS packet，可写入大小
		inSize := rpos - lpos           // 整个帧剩余待打包大小

		if bodySize <= inSize {
			// 当前packet写不完这个帧，或者刚好够写完
			copy(packet[wpos:], frame.Raw[lpos:lpos+bodySize])
			lpos += bodySize
			continue
		}

		// 当前packet可以写完这个帧，并且还有空闲空间
		// 此时，真实数据挪最后，中间用0xFF填充到Adaptation中
		wpos = stuffAdaptation(packet, wpos, bodySize-inSize)
		copy(packet[wpos:], frame.Raw[lpos:lpos+inSize])
		lpos = rpos
	}

	return buf[:packetPosAtBuf]
}

// ----- private -------------------------------------------------------------------------------------------------------

// -----TS Header----------------
// sync_byte
// transport_error_indicator    0
// payload_unit_start_indicator
// transport_priority           0
// PID
// transport_scrambling_control 0
// adaptation_field_control     先设置成无Adaptation
// continuity_counter
// ------------------------------
func packTsHeader(packet []byte, pid uint16, unitStart bool, cc uint8) int {
	packet[0] = syncByte
	packet[1] = 0x0
	if unitStart {
		packet[1] = 0x40 // payload_unit_start_indicator
	}
	packet[1] |= uint8((pid >> 8) & 0x1F) //PID高5位
	packet[2] = uint8(pid & 0xFF)         //PID低8位
	packet[3] = 0x10 | (cc & 0x0f)
	return 4
}

// -----Adaptation-----------------------
// adaptation_field_length
// discontinuity_indicator              0
// random_access_indicator              1
// elementary_stream_priority_indicator 0
// PCR_flag                             1
// OPCR_flag                            0
// splicing_point_flag                  0
// transport_private_data_flag          0
// adaptation_field_extension_flag      0
// program_clock_reference_base
// reserved
// program_clock_reference_extension
// --------------------------------------
func packPcrAdaptation(packet []byte, pcr uint64) int {
	packet[3] |= 0x20 // adaptation_field_control 设置Adaptation
	packet[4] = 7     // adaptation_field_length
	packet[5] = 0x50  // random_access_indicator + PCR_flag
	packPcr(packet[6:], pcr)
	return 8
}

// -----PES Header------------
// packet_start_code_prefix
// stream_id
// PES_packet_length
// '10'
// PES_scrambling_control    0
// PES_priority              0
// data_alignment_indicator
// copyright                 0
// original_or_copy          0
// PTS_DTS_flags
// ESCR_flag                 0
// ES_rate_flag              0
// DSM_trick_mode_flag       0
// additional_copy_info_flag 0
// PES_CRC_flag              0
// PES_extension_flag        0
// PES_header_data_length
// PTS/DTS
// stuffing_byte
// ---------------------------
func (frame *Frame) packPesHeader(out []byte, rawSize int) int {
	out[0] = 0x00 // packet_start_code_prefix 24-bits
	out[1] = 0x00
	out[2] = 0x01
	out[3] = frame.Sid

	// PTS相关
	headerSize := uint8(5)
	flags := uint8(0x80)
	// DTS相关
	if frame.Dts != frame.Pts {
		headerSize += 5
		flags |= 0x40
	}
	ptsDtsSize := headerSize
	if headerSize < frame.MinHeaderDataLength {
		headerSize = frame.MinHeaderDataLength
	}

	pesSize := rawSize + int(headerSize) + 3 // PES Header剩余3字节 + header data + 整个帧的长度
	if pesSize > 0xFFFF {
		pesSize = 0
	}

	out[4] = uint8(pesSize >> 8) // PES_packet_length
	out[5] = uint8(pesSize & 0xFF)
	out[6] = 0x80 // '10'
	if frame.DataAlignment {
		out[6] |= 0x04
	}
	out[7] = flags      // PTS/DTS flag
	out[8] = headerSize // PES_header_data_length
	wpos := 9

	packPts(out[wpos:], flags>>6, frame.Pts+delay)
	wpos += 5
	if frame.Pts != frame.Dts {
		packPts(out[wpos:], 1, frame.Dts+delay)
		wpos += 5
	}

	for i := ptsDtsSize; i < headerSize; i++ {
		out[wpos] = 0xFF
		wpos++
	}
	return wpos
}

// stuffAdaptation 在TS Header之后插入 stuffSize 字节的Adaptation填充，已经写入的PES Header整体后移
//
// @return 真实数据的写入位置
//
func stuffAdaptation(packet []byte, wpos int, stuffSize int) int {
	if packet[3]&0x20 != 0 {
		// 原本有Adaptation，在其尾部追加0xFF
		base := int(4 + packet[4]) + 1
		if wpos > base {
			copy(packet[base+stuffSize:], packet[base:wpos])
		}
		packet[4] += uint8(stuffSize) // adaptation_field_length
		for i := 0; i < stuffSize; i++ {
			packet[base+i] = 0xFF
		}
		return wpos + stuffSize
	}

	// 原本没有Adaptation
	packet[3] |= 0x20

	base := 4
	if wpos > base {
		copy(packet[base+stuffSize:], packet[base:wpos])
	}

	packet[4] = uint8(stuffSize - 1) // adaptation_field_length
	if stuffSize >= 2 {
		packet[5] = 0 // 所有flag为0
		for i := 0; i < stuffSize-2; i++ {
			packet[6+i] = 0xFF
		}
	}
	return wpos + stuffSize
}

func packPcr(out []byte, pcr uint64) {
	out[0] = uint8(pcr >> 25)
	out[1] = uint8(pcr >> 17)
	out[2] = uint8(pcr >> 9)
	out[3] = uint8(pcr >> 1)
	out[4] = uint8(pcr<<7) | 0x7e
	out[5] = 0
}

// 注意，除PTS外，DTS也使用这个函数打包
func packPts(out []byte, fb uint8, pts uint64) {
	var val uint64
	out[0] = (fb << 4) | (uint8(pts>>30) & 0x07) | 1

	val = (((pts >> 15) & 0x7FFF) << 1) | 1
	out[1] = uint8(val >> 8)
	out[2] = uint8(val)

	val = ((pts & 0x7FFF) << 1) | 1
	out[3] = uint8(val >> 8)
	out[4] = uint8(val)
}
