package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenSessionID 会话 ID，base36 字符串
func GenSessionID() string {
	return node.Generate().Base36()
}
