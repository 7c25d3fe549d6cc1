// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

// ----- sink --------------------
var (
	// SinkOp47DefaultRange OP-47插入器APPLY命令默认的作用范围
	SinkOp47DefaultRange = "1-301"

	// SinkWriteTimeoutMs 网络类sink的写超时，单位毫秒
	SinkWriteTimeoutMs = 5000
)
