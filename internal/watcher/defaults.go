package watcher

import "time"

const (
	defaultLookback       = 144
	defaultWorkerCount    = 8
	defaultPollInterval   = 30 * time.Second
	defaultMaxBackoff     = 5 * time.Minute
	maxBlocksPerIteration = 500
)
