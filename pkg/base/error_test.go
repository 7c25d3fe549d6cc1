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
	"strings"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
)

func TestNewErr(t *testing.T) {
	err := NewErrSinkUnknownType("carrier-pigeon")
	assert.Equal(t, true, errors.Is(err, ErrSinkUnknownType))
	assert.Equal(t, true, strings.Contains(err.Error(), "carrier-pigeon"))

	err = NewErrMpegtsInvalidTeletextPacket(3, 44)
	assert.Equal(t, true, errors.Is(err, ErrMpegtsInvalidTeletextPacket))
	assert.Equal(t, "lalop47.mpegts: invalid teletext packet size. index=3, size=44", err.Error())

	err = NewErrConfigInvalid("page.magazine", 9)
	assert.Equal(t, true, errors.Is(err, ErrConfigInvalid))
}

func TestUniqueKey(t *testing.T) {
	k1 := GenUkOp47Client()
	k2 := GenUkOp47Client()
	assert.Equal(t, true, strings.HasPrefix(k1, UkPreOp47Client))
	assert.Equal(t, false, k1 == k2)
	assert.Equal(t, true, strings.HasPrefix(GenUkTeletextMuxer(), UkPreTeletextMuxer))
}
