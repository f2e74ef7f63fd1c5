// Package metrics wraps datadog-go to facilitate metric recording.
// Naming convention:
// - External latency: *.latency
// - Error: *.err
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/buildwithgrove/mcp-gateway/base/env"
	"github.com/buildwithgrove/mcp-gateway/base/log"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"

	ddPort = 8125
	// buffer a few counters before flushing to the statsd agent
	bufferMetrics = 10
)

// Ender finishes a timing started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

var (
	initOnce sync.Once
	ddClient statsCli
)

type statsCli interface {
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initDDClient() {
	addr := fmt.Sprintf("%s:%d", viper.GetString("datadog_host"), ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")

	client, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Warn("can't talk to datadog agent, falling back to log metrics")
		ddClient = &LogClient{}
		return
	}
	ddClient = client
}

// New creates a metric client with the package name as prefix
func New(pkgName string) Service {
	return &impl{
		pkgName: pkgName,
		tags: []string{
			// using host removes all tags associated with host
			"host:",
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type impl struct {
	pkgName string
	tags    []string
}

func (im *impl) key(key string) string {
	return im.pkgName + "." + key
}

func (im *impl) allTags(tags []string) []string {
	out := append([]string{}, im.tags...)
	for i := 0; i+1 < len(tags); i += 2 {
		out = append(out, tags[i]+":"+tags[i+1])
	}
	return out
}

func (im *impl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	_ = ddClient.Count(im.key(key), int64(val), im.allTags(tags), 1)
}

func (im *impl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	_ = ddClient.Histogram(im.key(key), val, im.allTags(tags), 1)
}

type timeEnder struct {
	im    *impl
	key   string
	tags  []string
	start time.Time
}

func (e *timeEnder) End() {
	elapsed := float64(time.Since(e.start)) / float64(time.Millisecond)
	_ = ddClient.TimeInMilliseconds(e.im.key(e.key), elapsed, e.im.allTags(e.tags), 1)
}

func (im *impl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeEnder{im: im, key: key, tags: tags, start: time.Now()}
}
