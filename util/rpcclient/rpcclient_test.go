package rpcclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/Supercoolkayy/Ox-rollup-sub000/util/testhelpers"
)

func TestLogArgs(t *testing.T) {
	t.Parallel()

	str := logArgs(0, 1, 2, 3, "hello, world")
	if str != "[1, 2, 3, \"hello, world\"]" {
		Fail(t, "unexpected logs limit 0 got:", str)
	}

	str = logArgs(100, 1, 2, 3, "hello, world")
	if str != "[1, 2, 3, \"hello, world\"]" {
		Fail(t, "unexpected logs limit 100 got:", str)
	}

	str = logArgs(6, 1, 2, 3, "hello, world")
	if str != "[1, 2, 3, \"h..d\"]" {
		Fail(t, "unexpected logs limit 6 got:", str)
	}
}

type testAPI struct {
	failedCalls int64
}

func (t *testAPI) FailAtFirst(ctx context.Context) (uint64, error) {
	failedRemaining := atomic.AddInt64(&t.failedCalls, -1) + 1
	if failedRemaining > 0 {
		return 0, errors.New("connection refused")
	}
	return 42, nil
}

func createTestServer(t *testing.T, failedCalls int64) string {
	t.Helper()
	server := rpc.NewServer()
	Require(t, server.RegisterName("test", &testAPI{failedCalls: failedCalls}))
	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	return httpServer.URL
}

func TestRetries(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := TestClientConfig
	config.URL = createTestServer(t, 2)
	config.Timeout = time.Second
	config.RetryErrors = "connection refused"

	client := NewRpcClient(func() *ClientConfig { return &config })
	Require(t, client.Start(ctx))
	defer client.Close()

	var result uint64
	err := client.CallContext(ctx, &result, "test_failAtFirst")
	if err == nil {
		Fail(t, "expected failure without retries")
	}

	config.Retries = 2
	err = client.CallContext(ctx, &result, "test_failAtFirst")
	Require(t, err)
	if result != 42 {
		Fail(t, "unexpected result", result)
	}
}

func TestRetryErrorsMustMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	config := TestClientConfig
	config.URL = createTestServer(t, 2)
	config.Retries = 3
	config.RetryErrors = "nonce too low"

	client := NewRpcClient(func() *ClientConfig { return &config })
	Require(t, client.Start(ctx))
	defer client.Close()

	var result uint64
	if err := client.CallContext(ctx, &result, "test_failAtFirst"); err == nil {
		Fail(t, "non-matching errors must not be retried")
	}

	// the expression is recompiled when the config changes
	config.RetryErrors = "refused"
	Require(t, client.CallContext(ctx, &result, "test_failAtFirst"))
	if result != 42 {
		Fail(t, "unexpected result", result)
	}
}

func TestNotConnected(t *testing.T) {
	t.Parallel()
	client := NewRpcClient(func() *ClientConfig { return &TestClientConfig })
	var result uint64
	if err := client.CallContext(context.Background(), &result, "test_failAtFirst"); err == nil {
		Fail(t, "call without connection should fail")
	}
}

func TestValidate(t *testing.T) {
	config := DefaultClientConfig
	Require(t, config.Validate())
	config.RetryErrors = "("
	if config.Validate() == nil {
		Fail(t, "bad regexp accepted")
	}
	config.URL = ""
	if config.Validate() == nil {
		Fail(t, "empty url accepted")
	}
}

func Require(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, printables...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
