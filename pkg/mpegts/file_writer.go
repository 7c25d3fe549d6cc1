// Copyright 2019, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"bufio"
	"os"

	"github.com/q191201771/lalop47/pkg/base"
)

// FileWriter 实现io.Writer，可以直接作为 TeletextMuxer 的输出
type FileWriter struct {
	fp *os.File
	bw *bufio.Writer
}

func (fw *FileWriter) Create(filename string) (err error) {
	fw.fp, err = os.Create(filename)
	if err != nil {
		return
	}
	fw.bw = bufio.NewWriterSize(fw.fp, TsPacketSize*64)
	return
}

func (fw *FileWriter) Write(b []byte) (int, error) {
	if fw.fp == nil {
		return 0, base.ErrMpegts
	}
	return fw.bw.Write(b)
}

func (fw *FileWriter) Flush() error {
	if fw.fp == nil {
		return base.ErrMpegts
	}
	return fw.bw.Flush()
}

func (fw *FileWriter) Dispose() error {
	if fw.fp == nil {
		return base.ErrMpegts
	}
	if err := fw.bw.Flush(); err != nil {
		_ = fw.fp.Close()
		return err
	}
	return fw.fp.Close()
}

func (fw *FileWriter) Name() string {
	if fw.fp == nil {
		return ""
	}
	return fw.fp.Name()
}
