package db

import (
	"encoding/json"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/cbsinteractive/timecode-service/clip"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const keyPrefix = "timeline:"

type Options struct {
	Addr     string
	Password string
	DB       int
	PoolSize int

	// TTL is how long a timeline is kept after its last Put; zero keeps
	// timelines forever
	TTL time.Duration
}

// RedisRepository stores timelines as json strings
type RedisRepository struct {
	rc  *redis.Client
	ttl time.Duration
}

func NewRedisRepository(opt *Options) (*RedisRepository, error) {
	if opt == nil {
		opt = &Options{}
	}
	addr := opt.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "6379")
	}
	r := &RedisRepository{
		rc: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: opt.Password,
			DB:       opt.DB,
			PoolSize: opt.PoolSize,
		}),
		ttl: opt.TTL,
	}
	if err := r.rc.Ping().Err(); err != nil {
		r.rc.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", addr)
	}
	return r, nil
}

func (r *RedisRepository) Get(id string) (*clip.Timeline, error) {
	val, err := r.rc.Get(keyPrefix + id).Result()
	if err == redis.Nil {
		return nil, ErrTimelineNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading timeline %q", id)
	}
	t := &clip.Timeline{}
	if err := json.Unmarshal([]byte(val), t); err != nil {
		return nil, errors.Wrapf(err, "decoding timeline %q", id)
	}
	return t, nil
}

func (r *RedisRepository) Put(t *clip.Timeline) error {
	data, err := json.Marshal(t)
	if err != nil {
		return errors.Wrapf(err, "encoding timeline %q", t.ID)
	}
	return r.rc.Set(keyPrefix+t.ID, string(data), r.ttl).Err()
}

func (r *RedisRepository) Delete(id string) error {
	n, err := r.rc.Del(keyPrefix + id).Result()
	if err != nil {
		return errors.Wrapf(err, "deleting timeline %q", id)
	}
	if n == 0 {
		return ErrTimelineNotFound
	}
	return nil
}

func (r *RedisRepository) List() ([]string, error) {
	ids := []string{}
	iter := r.rc.Scan(0, keyPrefix+"*", 100).Iterator()
	for iter.Next() {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "listing timelines")
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *RedisRepository) Close() error {
	return r.rc.Close()
}
