// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

// 版本信息相关
// 一部分版本信息使用了naza.bininfo，另外一些信息在本文件提供

// Op47Version 整个工程的版本号。注意，该变量由外部脚本修改维护，不要手动在代码中修改
//
const Op47Version = "v0.3.0"

// ConfVersion op47enc的配置文件的版本号
//
const ConfVersion = "v0.1.1"

var (
	Op47LibraryName = "lalop47"
	Op47GithubRepo  = "github.com/q191201771/lalop47"
	Op47GithubSite  = "https://github.com/q191201771/lalop47"

	// Op47FullInfo e.g. lalop47 v0.3.0 (github.com/q191201771/lalop47)
	Op47FullInfo = Op47LibraryName + " " + Op47Version + " (" + Op47GithubRepo + ")"

	// Op47WebsocketSubprotocol 植入websocket握手的子协议字段中
	// e.g. lalop47/0.3.0
	Op47WebsocketSubprotocol = Op47LibraryName + "/" + Op47Version[1:]
)
