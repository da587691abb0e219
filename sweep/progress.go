// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sweep

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/grailbio/strmem/log"
)

// progress tracks the models of a running set and logs the number
// queued, running and done, with an estimate of the time left. The
// estimate assumes that models take roughly equal time.
type progress struct {
	mu sync.Mutex

	workers               int
	queued, running, done int
	start                 time.Time
	cumulative            time.Duration
	startTimes            map[string]time.Time
}

func newProgress(n, workers int, now time.Time) *progress {
	return &progress{
		workers:    workers,
		queued:     n,
		start:      now,
		startTimes: make(map[string]time.Time),
	}
}

func (p *progress) begin(name string, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startTimes[name] = now
	p.queued--
	p.running++
}

func (p *progress) end(name string, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	start, ok := p.startTimes[name]
	if !ok {
		panic("sweep: end of model " + name + " without begin")
	}
	delete(p.startTimes, name)
	p.running--
	p.done++
	p.cumulative += now.Sub(start)
	log.Printf("%s", p.statusLocked(now))
}

func (p *progress) status(now time.Time) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked(now)
}

func (p *progress) statusLocked(now time.Time) string {
	return fmt.Sprintf("models queued %d, running %d, done %d; %v elapsed, %s",
		p.queued, p.running, p.done, now.Sub(p.start).Round(time.Second), p.left(now))
}

// left estimates the remaining time from the mean time of the models
// done, or, before any is done, from the mean time of those running.
func (p *progress) left(now time.Time) string {
	var (
		modifier string
		avg      time.Duration
		running  time.Duration
	)
	for _, t := range p.startTimes {
		running += now.Sub(t)
	}
	switch {
	case p.done > 0:
		modifier = "~"
		avg = p.cumulative / time.Duration(p.done)
	case p.running > 0:
		modifier = ">"
		avg = running / time.Duration(p.running)
	default:
		return "unknown time left"
	}
	var runningLeft time.Duration
	if p.running > 0 {
		runningLeft = (time.Duration(p.running)*avg - running) / time.Duration(p.running)
		if runningLeft < 0 {
			runningLeft = 0
		}
	}
	queuedLeft := time.Duration(math.Ceil(float64(p.queued)/float64(p.workers))) * avg
	return fmt.Sprintf("%s%v left", modifier, (runningLeft + queuedLeft).Round(time.Second))
}
