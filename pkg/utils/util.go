package utils

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
)

func PanicTrace(err interface{}) string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%v\n", err)
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fmt.Fprintf(buf, "%s:%d (0x%x)\n", file, line, pc)
	}
	return buf.String()
}

// LikeEscape 是 LIKE 子句使用的转义字符
const LikeEscape = "!"

// ContainsPattern 生成 %keyword% 匹配串，转义 LIKE 通配符。
// 大小写折叠交给 SQL 的 LOWER，两侧保持一致
func ContainsPattern(keyword string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(keyword) + "%"
}
