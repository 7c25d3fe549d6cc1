// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/unique"

const (
	UkPreOp47Client    = "OP47CLI"
	UkPreWebsocketSink = "WSSINK"
	UkPreSrtSink       = "SRTSINK"
	UkPreTsFileSink    = "TSSINK"
	UkPreStdoutSink    = "STDSINK"
	UkPreTeletextMuxer = "TTXMUXER"
)

func GenUkOp47Client() string {
	return siUkOp47Client.GenUniqueKey()
}

func GenUkWebsocketSink() string {
	return siUkWebsocketSink.GenUniqueKey()
}

func GenUkSrtSink() string {
	return siUkSrtSink.GenUniqueKey()
}

func GenUkTsFileSink() string {
	return siUkTsFileSink.GenUniqueKey()
}

func GenUkStdoutSink() string {
	return siUkStdoutSink.GenUniqueKey()
}

func GenUkTeletextMuxer() string {
	return siUkTeletextMuxer.GenUniqueKey()
}

var (
	siUkOp47Client    *unique.SingleGenerator
	siUkWebsocketSink *unique.SingleGenerator
	siUkSrtSink       *unique.SingleGenerator
	siUkTsFileSink    *unique.SingleGenerator
	siUkStdoutSink    *unique.SingleGenerator
	siUkTeletextMuxer *unique.SingleGenerator
)

func init() {
	siUkOp47Client = unique.NewSingleGenerator(UkPreOp47Client)
	siUkWebsocketSink = unique.NewSingleGenerator(UkPreWebsocketSink)
	siUkSrtSink = unique.NewSingleGenerator(UkPreSrtSink)
	siUkTsFileSink = unique.NewSingleGenerator(UkPreTsFileSink)
	siUkStdoutSink = unique.NewSingleGenerator(UkPreStdoutSink)
	siUkTeletextMuxer = unique.NewSingleGenerator(UkPreTeletextMuxer)
}
