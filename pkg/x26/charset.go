// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/lalop47
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package x26

import "strings"

// Charset G0 national option subset，对应 page header 的 C12~C14 控制位
//
// <ETS 300 706> <Table 32: Function of Control Bits C12, C13, C14>
// <ETS 300 706> <Table 36: Latin National Option Sub-sets>
//
type Charset uint8

const (
	CharsetEnglish Charset = 0 // C12 C13 C14 = 0 0 0
	CharsetSwedish Charset = 2 // C12 C13 C14 = 0 1 0 （Swedish/Finnish/Hungarian）
)

func (c Charset) String() string {
	switch c {
	case CharsetEnglish:
		return "english"
	case CharsetSwedish:
		return "swedish"
	}
	return "unknown"
}

// NationalOption C12~C14 三个bit，C12为最低位
func (c Charset) NationalOption() uint8 {
	return uint8(c) & 0x07
}

// ParseCharset 不认识的名字返回 CharsetEnglish 和 false
func ParseCharset(name string) (Charset, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "english", "en":
		return CharsetEnglish, true
	case "swedish", "sv", "finnish", "fi":
		return CharsetSwedish, true
	}
	return CharsetEnglish, false
}

// 字符到national option位置上的7位字符的映射
//
// national option 的13个位置是 0x23 0x24 0x40 0x5B 0x5C 0x5D 0x5E 0x5F 0x60 0x7B 0x7C 0x7D 0x7E
var g0EnglishSubset = map[rune]rune{
	'£': '#',
	'$': '$',
	'@': '@',
	'←': '[',
	'½': '\\',
	'→': ']',
	'↑': '^',
	'#': '_',
	'—': '`',
	'¼': '{',
	'‖': '|',
	'¾': '}',
	'÷': '~',
}

var g0SwedishSubset = map[rune]rune{
	'#': '#',
	'¤': '$',
	'É': '@',
	'Ä': '[',
	'Ö': '\\',
	'Å': ']',
	'Ü': '^',
	'_': '_',
	'é': '`',
	'ä': '{',
	'ö': '|',
	'å': '}',
	'ü': '~',
}

func (c Charset) subset() map[rune]rune {
	if c == CharsetSwedish {
		return g0SwedishSubset
	}
	return g0EnglishSubset
}

// G2 Latin supplementary set，下标+0x20为字符在G2中的编码
//
// <ETS 300 706> <Figure 36: Latin G2 Supplementary Set>
// 0x00表示该位置不使用。4x一行是给G0字符用的变音符号，这里不支持。
var g2Latin = [96]rune{
	0, '¡', '¢', '£', '$', '¥', '#', '§', '¤', '‘', '“', '«', '←', '↑', '→', '↓', // 2x
	'°', '±', '²', '³', '×', 'µ', '¶', '·', '÷', '’', '”', '»', '¼', '½', '¾', '¿', // 3x
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 4x
	'─', '¹', '®', '©', '™', '♪', '₠', '‰', 'α', 0, 0, 0, '⅛', '⅜', '⅝', '⅞', // 5x
	'Ω', 'Æ', 'Ð', 'ª', 'Ħ', 0, 'Ĳ', 'Ŀ', 'Ł', 'Ø', 'Œ', 'º', 'Þ', 'Ŧ', 'Ŋ', 'ŉ', // 6x
	'ĸ', 'æ', 'đ', 'ð', 'ħ', 'ı', 'ĳ', 'ŀ', 'ł', 'ø', 'œ', 'ß', 'þ', 'ŧ', 'ŋ', '■', // 7x
}

// 不支持enhancement的解码器上显示的近似字符，与 g2Latin 一一对应
var g2LatinFallback = [96]rune{
	' ', ' ', ' ', ' ', ' ', ' ', '#', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', // 2x
	' ', ' ', '2', '3', 'x', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', // 3x
	' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', // 4x
	'-', '1', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', // 5x
	'O', 'A', 'D', ' ', ' ', ' ', ' ', ' ', ' ', 'O', 'O', ' ', ' ', ' ', ' ', ' ', // 6x
	'K', 'a', 'd', 'd', ' ', ' ', ' ', ' ', ' ', 'o', 'o', 's', 'p', ' ', ' ', 0x7F, // 7x
}

var g2LatinIndex map[rune]int

// LookupG2 查找 r 在G2中的下标
func LookupG2(r rune) (index int, ok bool) {
	index, ok = g2LatinIndex[r]
	return
}

func init() {
	g2LatinIndex = make(map[rune]int)
	for i, r := range g2Latin {
		if r == 0 {
			continue
		}
		g2LatinIndex[r] = i
	}
}
