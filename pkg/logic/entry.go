// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"fmt"
	"io"
	"os"

	"github.com/q191201771/lalop47/pkg/base"
	"github.com/q191201771/lalop47/pkg/sink"
	"github.com/q191201771/naza/pkg/nazalog"
)

// Entry 加载配置、初始化日志，编码 inputFile 中的所有字幕page并发送到配置的sink
//
// @param inputFile: 为空时从标准输入读取
//
func Entry(confFile string, inputFile string) {
	config := LoadConfAndInitLog(confFile)
	base.LogoutStartInfo()

	var input io.Reader = os.Stdin
	if inputFile != "" {
		fp, err := os.Open(inputFile)
		if err != nil {
			Log.Errorf("open input file failed. file=%s, err=%+v", inputFile, err)
			base.OsExitAndWaitPressIfWindows(1)
		}
		defer fp.Close()
		input = fp
	}

	s, err := sink.NewSink(config.SinkConfig)
	if err != nil {
		Log.Errorf("create sink failed. type=%s, err=%+v", config.SinkConfig.Type, err)
		base.OsExitAndWaitPressIfWindows(1)
	}

	r := NewRunner(config, s)
	go base.RunSignalHandler(func() {
		r.Dispose()
	})

	err = r.Run(input)
	_ = s.Dispose()
	nazalog.Sync()
	if err != nil {
		Log.Errorf("run failed. err=%+v", err)
		base.OsExitAndWaitPressIfWindows(1)
	}
}

func LoadConfAndInitLog(theConfigFile string) *Config {
	theConfigFile, rawContent := base.WrapReadConfigFile(theConfigFile, DefaultConfFilenameList, nil)

	config, err := LoadConf(theConfigFile, rawContent)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "load conf failed. file=%s err=%+v\n", theConfigFile, err)
		base.OsExitAndWaitPressIfWindows(1)
	}

	if err = nazalog.Init(func(option *nazalog.Option) {
		*option = config.LogConfig
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "initial log failed. err=%+v\n", err)
		base.OsExitAndWaitPressIfWindows(1)
	}
	Log.Info("initial log succ.")

	if config.ConfVersion != base.ConfVersion {
		Log.Warnf("config version invalid. conf version of lalop47=%s, conf version of config file=%s",
			base.ConfVersion, config.ConfVersion)
	}

	Log.Infof("load conf file succ. filename=%s, raw content=%s parsed=%+v", theConfigFile, rawContent, config)
	return config
}
