// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"encoding/hex"
	"fmt"

	"github.com/q191201771/naza/pkg/nazalog"
)

// LogDump 控制hex dump之类开销较大的日志的打印次数
type LogDump struct {
	log         nazalog.Logger
	debugMaxNum int

	debugCount int
}

// NewLogDump
//
// @param debugMaxNum: 日志最小级别为debug时，最多打印的次数。trace级别不限制，info及以上不打印
//
func NewLogDump(log nazalog.Logger, debugMaxNum int) LogDump {
	return LogDump{
		log:         log,
		debugMaxNum: debugMaxNum,
	}
}

func (ld *LogDump) ShouldDump() bool {
	switch ld.log.GetOption().Level {
	case nazalog.LevelTrace:
		return true
	case nazalog.LevelDebug:
		if ld.debugCount >= ld.debugMaxNum {
			return false
		}
		ld.debugCount++
		return true
	}
	return false
}

// Outf
//
// 调用之前需调用 ShouldDump ，避免不需要打印时构造实参的开销
//
func (ld *LogDump) Outf(format string, v ...interface{}) {
	ld.log.Out(ld.log.GetOption().Level, 3, fmt.Sprintf(format, v...))
}

// OutPackets 逐个packet打印hex，每个packet一行
func (ld *LogDump) OutPackets(prefix string, packets [][]byte) {
	for i, p := range packets {
		ld.log.Out(ld.log.GetOption().Level, 3, fmt.Sprintf("%s [%d] %s", prefix, i, hex.EncodeToString(p)))
	}
}
