// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"bufio"
	"io"
	"strings"
)

// ReadPages 读取字幕文本，page之间用空行分隔，page内每行为屏幕上的一行
//
// @param maxRows: 每个page最多的行数，多余的行被丢弃，超出 MaxRowsPerPage 时按 MaxRowsPerPage 处理
//
func ReadPages(r io.Reader, maxRows int) ([][]string, error) {
	if maxRows > MaxRowsPerPage {
		maxRows = MaxRowsPerPage
	}

	var (
		pages [][]string
		rows  []string
	)

	flush := func() {
		if len(rows) == 0 {
			return
		}
		if len(rows) > maxRows {
			Log.Warnf("too many rows in page, drop the rest. page=%d, rows=%d, max=%d", len(pages), len(rows), maxRows)
			rows = rows[:maxRows]
		}
		pages = append(pages, rows)
		rows = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return pages, nil
}
