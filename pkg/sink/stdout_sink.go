// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package sink

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/q191201771/lalop47/pkg/base"
)

// StdoutSink 每个page输出一行，packet做base64后用空格分隔，便于调试和管道处理
type StdoutSink struct {
	uniqueKey string
	w         io.Writer
}

// NewStdoutSink w 为nil时使用os.Stdout
func NewStdoutSink(w io.Writer) *StdoutSink {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutSink{
		uniqueKey: base.GenUkStdoutSink(),
		w:         w,
	}
}

func (s *StdoutSink) Send(packets [][]byte) error {
	items := make([]string, len(packets))
	for i, p := range packets {
		items[i] = base64.StdEncoding.EncodeToString(p)
	}
	_, err := fmt.Fprintln(s.w, strings.Join(items, " "))
	return err
}

func (s *StdoutSink) Dispose() error {
	return nil
}

func (s *StdoutSink) UniqueKey() string {
	return s.uniqueKey
}
