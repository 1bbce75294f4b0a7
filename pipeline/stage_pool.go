// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolRunning is returned by Run on a pool that was already started.
var ErrPoolRunning = errors.New("pipeline: stage pool already running")

// StagePool runs one Stage on a fixed number of goroutines. Items leave the
// pool in the order workers finish them, failed ones included; EmitStage puts
// them back into submission order.
type StagePool struct {
	stage   Stage
	workers int
	done    func(item *Item, err error)
	wg      sync.WaitGroup
	closed  chan struct{}
	running atomic.Bool
}

// NewStagePool creates a pool of workers for stage. workers below 1 means a
// single worker. done, when not nil, is called for every item the stage
// finished, with the error it returned. It panics if stage is nil.
func NewStagePool(stage Stage, workers int, done func(item *Item, err error)) *StagePool {
	if stage == nil {
		panic(ErrNilStage)
	}
	return &StagePool{
		stage:   stage,
		workers: max(workers, 1),
		done:    done,
		closed:  make(chan struct{}),
	}
}

// Run starts the workers. They consume in until it is closed or ctx is done,
// and out is closed after the last one returns. Stage errors go to errs,
// which may be nil.
func (p *StagePool) Run(ctx context.Context, in <-chan *Item, out chan<- *Item, errs chan<- error) error {
	if p.running.Swap(true) {
		return ErrPoolRunning
	}
	p.wg.Add(p.workers)
	for range p.workers {
		go p.work(ctx, in, out, errs)
	}
	go func() {
		p.wg.Wait()
		close(out)
		close(p.closed)
	}()
	return nil
}

// Wait blocks until every worker has returned and the output channel is
// closed. It returns at once for a pool that was never run.
func (p *StagePool) Wait() {
	if !p.running.Load() {
		return
	}
	<-p.closed
}

func (p *StagePool) work(ctx context.Context, in <-chan *Item, out chan<- *Item, errs chan<- error) {
	defer p.wg.Done()
	for {
		var item *Item
		select {
		case <-ctx.Done():
			return
		case next, ok := <-in:
			if !ok {
				return
			}
			item = next
		}

		err := p.stage.Process(ctx, item)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		if p.done != nil {
			p.done(item, err)
		}
		if err != nil && errs != nil {
			select {
			case errs <- err:
			case <-ctx.Done():
				return
			}
		}
		select {
		case out <- item:
		case <-ctx.Done():
			return
		}
	}
}
