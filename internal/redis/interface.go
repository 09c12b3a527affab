package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client wraps redis.UniversalClient so repositories can take a mock
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch writes
type Pipeliner interface {
	redis.Pipeliner
}
