// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"errors"
	"fmt"
)

// ----- 通用的 ---------------------------------------------------------------------------------------------------------

var (
	ErrShortBuffer  = errors.New("lalop47: buffer too short")
	ErrFileNotExist = errors.New("lalop47: file not exist")
)

// ----- pkg/mpegts ----------------------------------------------------------------------------------------------------

var (
	ErrMpegts = errors.New("lalop47.mpegts: fxxk")

	ErrMpegtsInvalidTeletextPacket = errors.New("lalop47.mpegts: invalid teletext packet size")
)

func NewErrMpegtsInvalidTeletextPacket(index, size int) error {
	return fmt.Errorf("%w. index=%d, size=%d", ErrMpegtsInvalidTeletextPacket, index, size)
}

// ----- pkg/sink ------------------------------------------------------------------------------------------------------

var (
	ErrSinkClosed          = errors.New("lalop47.sink: sink already disposed")
	ErrSinkUnknownType     = errors.New("lalop47.sink: unknown sink type")
	ErrSinkUnexpectedReply = errors.New("lalop47.sink: unexpected reply from inserter")
	ErrSinkSrtNotBuilt     = errors.New("lalop47.sink: srt sink not built, rebuild with -tags srt")
)

func NewErrSinkUnknownType(t string) error {
	return fmt.Errorf("%w. type=%s", ErrSinkUnknownType, t)
}

func NewErrSinkUnexpectedReply(reply string) error {
	return fmt.Errorf("%w. reply=%s", ErrSinkUnexpectedReply, reply)
}

// ----- pkg/logic -----------------------------------------------------------------------------------------------------

var (
	ErrConfigInvalid = errors.New("lalop47.logic: invalid config")
)

func NewErrConfigInvalid(item string, v interface{}) error {
	return fmt.Errorf("%w. item=%s, value=%v", ErrConfigInvalid, item, v)
}

// ---------------------------------------------------------------------------------------------------------------------
