package common

import (
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
)

var snowflakeNode *snowflake.Node

func init() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var err error
	snowflakeNode, err = snowflake.NewNode(rng.Int63n(1023))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake-based unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake-based unique identifier string.
func UUID() string {
	return snowflakeNode.Generate().String()
}
