package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	RedisConf redis.RedisConf
	MysqlConf sqlx.SqlConf
	CacheConf cache.CacheConf

	ChatModel ModelConf
	Embedding ModelConf

	ElasticConf ElasticConf

	KafkaConf KafkaConf

	AsynqConf       AsynqRedisConf
	AsynqServerConf AsynqServerConf

	LogConf logx.LogConf

	JwtSecret string

	// HistoryLimit bounds how many stored turns are loaded per request.
	HistoryLimit int64
}

type ModelConf struct {
	BaseUrl string
	APIKey  string
	Model   string
}

type ElasticConf struct {
	Addresses []string
	Username  string
	Password  string
	IndexName string
}

type KafkaConf struct {
	Broker     []string
	OrderTopic string
}

// Minimal redis client config for Asynq
type AsynqRedisConf struct {
	Addr string
}

// Minimal asynq server config
type AsynqServerConf struct {
	Concurrency int
	Queues      map[string]int
}
