// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/nitro/blob/master/LICENSE

package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/node"
	"github.com/ethereum/go-ethereum/rpc"
)

type ClientConfig struct {
	URL            string        `koanf:"url"`
	JWTSecret      string        `koanf:"jwtsecret"`
	Timeout        time.Duration `koanf:"timeout" reload:"hot"`
	Retries        uint          `koanf:"retries" reload:"hot"`
	ConnectionWait time.Duration `koanf:"connection-wait"`
	ArgLogLimit    uint          `koanf:"arg-log-limit" reload:"hot"`
	RetryErrors    string        `koanf:"retry-errors" reload:"hot"`
}

func (c *ClientConfig) Validate() error {
	if c.URL == "" {
		return errors.New("no url provided for this connection")
	}
	if c.RetryErrors != "" {
		if _, err := regexp.Compile(c.RetryErrors); err != nil {
			return fmt.Errorf("invalid retry-errors expression: %w", err)
		}
	}
	return nil
}

type ClientConfigFetcher func() *ClientConfig

var TestClientConfig = ClientConfig{
	URL:     "http://127.0.0.1:8545",
	Timeout: 5 * time.Second,
}

var DefaultClientConfig = ClientConfig{
	URL:         "http://127.0.0.1:8545",
	Timeout:     30 * time.Second,
	Retries:     2,
	ArgLogLimit: 2048,
	RetryErrors: "connection refused|EOF",
}

func RPCClientAddOptions(prefix string, f *flag.FlagSet, defaultConfig *ClientConfig) {
	f.String(prefix+".url", defaultConfig.URL, "url of the upstream execution node")
	f.String(prefix+".jwtsecret", defaultConfig.JWTSecret, "path to file with jwtsecret for authenticated endpoints")
	f.Duration(prefix+".connection-wait", defaultConfig.ConnectionWait, "how long to wait for initial connection")
	f.Duration(prefix+".timeout", defaultConfig.Timeout, "per-response timeout (0-disabled)")
	f.Uint(prefix+".arg-log-limit", defaultConfig.ArgLogLimit, "limit size of arguments in log entries")
	f.Uint(prefix+".retries", defaultConfig.Retries, "number of retries in case of failure(0 mean one attempt)")
	f.String(prefix+".retry-errors", defaultConfig.RetryErrors, "Errors matching this regular expression are automatically retried")
}

var (
	upstreamCallTimer      = metrics.NewRegisteredTimer("arb/upstream/duration", nil)
	upstreamRetryCounter   = metrics.NewRegisteredCounter("arb/upstream/retries", nil)
	upstreamFailureCounter = metrics.NewRegisteredCounter("arb/upstream/failures", nil)
)

type RpcClient struct {
	config      ClientConfigFetcher
	client      *rpc.Client
	logId       uint64
	retryErrors atomic.Pointer[regexp.Regexp]
}

func NewRpcClient(config ClientConfigFetcher) *RpcClient {
	return &RpcClient{
		config: config,
	}
}

// Wraps an already connected client, used when the caller owns the dialing
func NewRpcClientFromClient(config ClientConfigFetcher, client *rpc.Client) *RpcClient {
	return &RpcClient{
		config: config,
		client: client,
	}
}

func (c *RpcClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Client exposes the underlying connection, e.g. for ethclient.NewClient
func (c *RpcClient) Client() *rpc.Client {
	return c.client
}

func limitString(limit int, str string) string {
	if limit == 0 || len(str) <= limit {
		return str
	}
	prefix := str[:limit/2-1]
	postfix := str[len(str)-limit/2+1:]
	return fmt.Sprintf("%v..%v", prefix, postfix)
}

func logArgs(limit int, args ...interface{}) string {
	res := "["
	for i, arg := range args {
		marshalled, err := json.Marshal(arg)
		if err != nil {
			res += "\"CANNOT MARSHALL:" + limitString(limit, err.Error()) + "\""
		} else {
			res += limitString(limit, string(marshalled))
		}
		if i < len(args)-1 {
			res += ", "
		}
	}
	res += "]"
	return res
}

// retryable reports whether err matches the configured retry-errors expression
func (c *RpcClient) retryable(err error) bool {
	expression := c.config().RetryErrors
	if expression == "" {
		return false
	}
	compiled := c.retryErrors.Load()
	if compiled == nil || compiled.String() != expression {
		var regexErr error
		compiled, regexErr = regexp.Compile(expression)
		if regexErr != nil {
			log.Warn("rpcclient: bad value for retry-errors, not retrying", "err", regexErr, "value", expression)
			return false
		}
		c.retryErrors.Store(compiled)
	}
	return compiled.MatchString(err.Error())
}

// CallContext retries timeouts and retryable errors up to the configured
// number of times, each attempt bounded by the configured timeout.
func (c *RpcClient) CallContext(ctx_in context.Context, result interface{}, method string, args ...interface{}) error {
	if c.client == nil {
		return errors.New("not connected")
	}
	logId := atomic.AddUint64(&c.logId, 1)
	log.Trace("sending RPC request", "method", method, "logId", logId, "args", logArgs(int(c.config().ArgLogLimit), args...))
	defer upstreamCallTimer.UpdateSince(time.Now())
	var err error
	for attempt := 0; attempt <= int(c.config().Retries); attempt++ {
		if ctx_in.Err() != nil {
			return ctx_in.Err()
		}
		if attempt > 0 {
			upstreamRetryCounter.Inc(1)
		}
		ctx, cancelCtx := ctx_in, context.CancelFunc(func() {})
		if timeout := c.config().Timeout; timeout > 0 {
			ctx, cancelCtx = context.WithTimeout(ctx_in, timeout)
		}
		err = c.client.CallContext(ctx, result, method, args...)
		cancelCtx()
		if err == nil {
			log.Trace("rpc response", "method", method, "logId", logId, "attempt", attempt)
			return nil
		}
		log.Info("rpc request failed", "method", method, "logId", logId, "err", err, "attempt", attempt, "args", logArgs(0, args...))
		if errors.Is(err, context.DeadlineExceeded) || c.retryable(err) {
			continue
		}
		break
	}
	upstreamFailureCounter.Inc(1)
	return err
}

func loadJWTSecret(path string) (*common.Hash, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	secret := common.FromHex(strings.TrimSpace(string(contents)))
	if len(secret) != common.HashLength {
		return nil, fmt.Errorf("jwt secret in %s must be %d bytes, found %d", path, common.HashLength, len(secret))
	}
	hash := common.BytesToHash(secret)
	return &hash, nil
}

func (c *RpcClient) Start(ctx_in context.Context) error {
	url := c.config().URL
	jwtPath := c.config().JWTSecret
	if url == "" {
		return errors.New("no url provided for this connection")
	}
	var jwt *common.Hash
	if jwtPath != "" {
		var err error
		jwt, err = loadJWTSecret(jwtPath)
		if err != nil {
			return err
		}
	}
	connTimeout := time.After(c.config().ConnectionWait)
	for {
		var ctx context.Context
		var cancelCtx context.CancelFunc
		timeout := c.config().Timeout
		if timeout > 0 {
			ctx, cancelCtx = context.WithTimeout(ctx_in, timeout)
		} else {
			ctx, cancelCtx = context.WithCancel(ctx_in)
		}
		var err error
		var client *rpc.Client
		if jwt == nil {
			client, err = rpc.DialContext(ctx, url)
		} else {
			client, err = rpc.DialOptions(ctx, url, rpc.WithHTTPAuth(node.NewJWTAuth([32]byte(*jwt))))
		}
		cancelCtx()
		if err == nil {
			c.client = client
			return nil
		}
		if strings.Contains(err.Error(), "parse") ||
			strings.Contains(err.Error(), "malformed") ||
			strings.Contains(err.Error(), "no known transport") {
			return fmt.Errorf("%w: url %s", err, url)
		}
		select {
		case <-connTimeout:
			return fmt.Errorf("timeout trying to connect lastError: %w", err)
		case <-time.After(time.Second):
		}
	}
}
