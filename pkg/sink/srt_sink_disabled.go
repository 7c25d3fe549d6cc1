// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

//go:build !srt
// +build !srt

package sink

import "github.com/q191201771/lalop47/pkg/base"

func newSrtSink(config Config) (Sink, error) {
	Log.Errorf("srt sink requested but not built. addr=%s", config.Addr)
	return nil, base.ErrSinkSrtNotBuilt
}
