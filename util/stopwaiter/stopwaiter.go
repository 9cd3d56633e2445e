// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

// Package stopwaiter ties background goroutines to a cancellable context so
// that their owner can stop them and wait until every one has returned.
package stopwaiter

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

const stopDelayWarningTimeout = 30 * time.Second

var ErrNotStarted = errors.New("not started")

type StopWaiterSafe struct {
	mutex    sync.Mutex // protects started, stopped, ctx, stopFunc, waitChan
	started  bool
	stopped  bool
	ctx      context.Context
	stopFunc func()
	name     string
	waitChan <-chan struct{}

	wg sync.WaitGroup
}

func (s *StopWaiterSafe) Started() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.started
}

func (s *StopWaiterSafe) Stopped() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stopped
}

func (s *StopWaiterSafe) GetContext() (context.Context, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.getContext()
}

// mutex must be held
func (s *StopWaiterSafe) getContext() (context.Context, error) {
	if s.started {
		return s.ctx, nil
	}
	return nil, ErrNotStarted
}

func ownerName(owner any) string {
	return strings.TrimPrefix(reflect.TypeOf(owner).String(), "*")
}

// Start derives the thread context from ctx. Starting twice is an error;
// starting after a stop yields an already cancelled context.
func (s *StopWaiterSafe) Start(ctx context.Context, owner any) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started {
		return errors.New("start after start")
	}
	s.started = true
	s.name = ownerName(owner)
	s.ctx, s.stopFunc = context.WithCancel(ctx)
	if s.stopped {
		s.stopFunc()
	}
	return nil
}

// StopOnly cancels the context without waiting for threads
func (s *StopWaiterSafe) StopOnly() {
	s.stopOnly()
}

func (s *StopWaiterSafe) stopOnly() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started && !s.stopped {
		s.stopFunc()
	}
	s.stopped = true
}

// StopAndWait may be called any number of times, even before Start
func (s *StopWaiterSafe) StopAndWait() error {
	return s.stopAndWaitImpl(stopDelayWarningTimeout)
}

func (s *StopWaiterSafe) stopAndWaitImpl(warningTimeout time.Duration) error {
	s.stopOnly()
	if !s.Started() {
		return nil
	}
	waitChan, err := s.GetWaitChannel()
	if err != nil {
		return err
	}
	timer := time.NewTimer(warningTimeout)
	defer timer.Stop()
	select {
	case <-waitChan:
		return nil
	case <-timer.C:
		log.Warn(s.name+" taking more than "+warningTimeout.String()+" to stop", "name", s.name)
	}
	<-waitChan
	return nil
}

// GetWaitChannel is closed once the context is cancelled and every launched thread returned
func (s *StopWaiterSafe) GetWaitChannel() (<-chan struct{}, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.waitChan == nil {
		ctx, err := s.getContext()
		if err != nil {
			return nil, err
		}
		waitChan := make(chan struct{})
		go func() {
			<-ctx.Done()
			s.wg.Wait()
			close(waitChan)
		}()
		s.waitChan = waitChan
	}
	return s.waitChan, nil
}

// LaunchThread silently skips foo if stop was already called
func (s *StopWaiterSafe) LaunchThread(foo func(context.Context)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	ctx, err := s.getContext()
	if err != nil {
		return err
	}
	if s.stopped {
		return nil
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		foo(ctx)
	}()
	return nil
}

// CallIteratively runs foo in a thread until stopped.
// foo returns how long to wait before the next invocation.
func (s *StopWaiterSafe) CallIteratively(foo func(context.Context) time.Duration) error {
	return s.LaunchThread(func(ctx context.Context) {
		for {
			interval := foo(ctx)
			if ctx.Err() != nil {
				return
			}
			if interval == 0 {
				continue
			}
			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	})
}

// StopWaiter panics where StopWaiterSafe would return an error
type StopWaiter struct {
	StopWaiterSafe
}

func (s *StopWaiter) Start(ctx context.Context, owner any) {
	if err := s.StopWaiterSafe.Start(ctx, owner); err != nil {
		panic(err)
	}
}

func (s *StopWaiter) StopAndWait() {
	if err := s.StopWaiterSafe.StopAndWait(); err != nil {
		panic(err)
	}
}

func (s *StopWaiter) LaunchThread(foo func(context.Context)) {
	if err := s.StopWaiterSafe.LaunchThread(foo); err != nil {
		panic(err)
	}
}

func (s *StopWaiter) CallIteratively(foo func(context.Context) time.Duration) {
	if err := s.StopWaiterSafe.CallIteratively(foo); err != nil {
		panic(err)
	}
}

func (s *StopWaiter) GetContext() context.Context {
	ctx, err := s.StopWaiterSafe.GetContext()
	if err != nil {
		panic(err)
	}
	return ctx
}
