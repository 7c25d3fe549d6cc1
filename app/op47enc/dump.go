// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	ts "github.com/asticode/go-astits"
	"github.com/q191201771/lalop47/pkg/mpegts"
	"github.com/q191201771/lalop47/pkg/wst"
)

// dumpTs 解析TS文件，打印PMT中的teletext descriptor以及每个page的内容
func dumpTs(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()

	dmx := ts.NewDemuxer(context.Background(), bufio.NewReader(fp))
	pageIndex := 0
	for {
		d, err := dmx.NextData()
		if err != nil {
			if errors.Is(err, ts.ErrNoMorePackets) {
				return nil
			}
			return err
		}

		if d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				for _, desc := range es.ElementaryStreamDescriptors {
					if desc.Tag != mpegts.DescriptorTagTeletext || desc.Teletext == nil {
						continue
					}
					for _, item := range desc.Teletext.Items {
						fmt.Printf("PMT pid=0x%x teletext lang=%s type=%d magazine=%d page=%d\n",
							es.ElementaryPID, string(item.Language), item.Type, item.Magazine, item.Page)
					}
				}
			}
		}

		if d.PES == nil {
			continue
		}
		packets, err := mpegts.ParseTeletextPesPayload(d.PES.Data)
		if err != nil {
			fmt.Printf("PES pid=0x%x not teletext. err=%+v\n", d.PID, err)
			continue
		}

		var pts int64
		if d.PES.Header.OptionalHeader != nil && d.PES.Header.OptionalHeader.PTS != nil {
			pts = d.PES.Header.OptionalHeader.PTS.Base
		}
		fmt.Printf("PAGE #%d pid=0x%x pts=%d packets=%d\n", pageIndex, d.PID, pts, len(packets))
		for _, p := range packets {
			fmt.Printf("  %s\n", describePacket(p))
		}
		pageIndex++
	}
}

func describePacket(p []byte) string {
	mag, row, ok := wst.DecodeAddress(p)
	if !ok {
		return "invalid address"
	}
	switch row {
	case wst.RowHeader:
		return fmt.Sprintf("M%d/%02d header", mag, row)
	case wst.RowEnhancement:
		return fmt.Sprintf("M%d/%02d enhancement", mag, row)
	}

	var sb strings.Builder
	for _, b := range p[wst.PrefixSize:] {
		c := b & 0x7F
		if c < 0x20 || c == 0x7F {
			c = ' '
		}
		sb.WriteByte(c)
	}
	return fmt.Sprintf("M%d/%02d |%s|", mag, row, sb.String())
}
