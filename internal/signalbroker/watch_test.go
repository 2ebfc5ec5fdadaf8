// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRunsTeardownAndExitsZero(t *testing.T) {
	exitCode := -1
	stub := gostub.Stub(&exitFn, func(code int) { exitCode = code })
	defer stub.Reset()

	sigCh := make(chan os.Signal, 1)

	var gotSig os.Signal

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(context.Background(), sigCh, func(s os.Signal) { gotSig = s })
	}()

	sigCh <- syscall.SIGTERM
	wg.Wait()

	assert.Equal(t, 0, exitCode, "operator stop must exit with status 0")
	assert.Equal(t, syscall.SIGTERM, gotSig)
}

func TestWatchReturnsOnClosedChannel(t *testing.T) {
	stub := gostub.Stub(&exitFn, func(int) { t.Fatal("exit must not be called") })
	defer stub.Reset()

	sigCh := make(chan os.Signal)

	done := make(chan struct{})

	go func() {
		Watch(context.Background(), sigCh, nil)
		close(done)
	}()

	close(sigCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Watch did not return after channel close")
	}
}
