// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

//go:build !srt
// +build !srt

package sink_test

import (
	"testing"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/sink"
	"github.com/q191201771/naza/pkg/assert"
)

func TestNewSinkSrtNotBuilt(t *testing.T) {
	_, err := sink.NewSink(sink.Config{Type: sink.TypeSrt, Addr: "127.0.0.1:6001"})
	assert.Equal(t, base.ErrSinkSrtNotBuilt, err)
}
