// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"fmt"
	"os"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/logic"
	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/spf13/pflag"
)

func main() {
	confFile, inputFile, dumpFile := parseFlag()
	if dumpFile != "" {
		if err := dumpTs(dumpFile); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "dump failed. file=%s, err=%+v\n", dumpFile, err)
			base.OsExitAndWaitPressIfWindows(1)
		}
		return
	}
	logic.Entry(confFile, inputFile)
}

func parseFlag() (string, string, string) {
	binInfoFlag := pflag.BoolP("version", "v", false, "show bin info")
	cf := pflag.StringP("conf", "c", "", "specify conf file")
	inf := pflag.StringP("input", "i", "", "subtitle text file, pages separated by blank lines (default stdin)")
	df := pflag.StringP("dump", "d", "", "print the teletext pages of a ts file and exit")
	pflag.Parse()
	if *binInfoFlag {
		_, _ = fmt.Fprint(os.Stderr, bininfo.StringifyMultiLine())
		_, _ = fmt.Fprintln(os.Stderr, base.Op47FullInfo)
		os.Exit(0)
	}
	if *cf == "" && *df == "" {
		_, _ = fmt.Fprintf(os.Stderr, `
Example:
  ./bin/op47enc -c ./conf/op47enc.conf.json -i ./subtitle.txt
  ./bin/op47enc --dump ./op47.ts

`)
	}
	return *cf, *inf, *df
}
