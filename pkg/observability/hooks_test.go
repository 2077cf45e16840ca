package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	Search().OnLoadComplete(ctx, "C125.9.clq", 125, 6963, time.Second, nil)
	Search().OnSearchStart(ctx, "C125.9.clq", 125)
	Search().OnImprove(ctx, "C125.9.clq", 0, 30)
	Search().OnSearchComplete(ctx, "C125.9.clq", 34, time.Second, nil)
	Search().OnVerifyFailed(ctx, "C125.9.clq", "not adjacent")
	Cache().OnCacheHit(ctx, "result")
	Cache().OnCacheMiss(ctx, "result")
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnRequest(ctx, "POST", "/v1/search")
	HTTP().OnResponse(ctx, "POST", "/v1/search", 200, time.Second)

	if Search() != Noop.Search || Cache() != Noop.Cache || HTTP() != Noop.HTTP {
		t.Error("Reset() did not install Noop")
	}
}

func TestRegister(t *testing.T) {
	Reset()
	defer Reset()

	counter := &improveCounter{}
	Register(Hooks{Search: counter})
	if Search() != counter {
		t.Fatal("Register did not install search hooks")
	}
	if Cache() != Noop.Cache {
		t.Error("nil Cache field replaced the registration")
	}

	Register(Hooks{})
	if Search() != counter {
		t.Error("empty Register replaced search hooks")
	}

	Search().OnImprove(context.Background(), "x", 2, 5)
	Search().OnImprove(context.Background(), "x", 7, 6)
	if counter.best != 6 || counter.calls != 2 {
		t.Errorf("counter = %+v", counter)
	}

	lh := NewLogHooks(log.New(&bytes.Buffer{}))
	Register(Hooks{Cache: lh, HTTP: lh})
	if Cache() != lh || HTTP() != lh || Search() != counter {
		t.Error("partial Register did not merge")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnCacheHit(ctx, "result")
	h.OnImprove(ctx, "k5.clq", 3, 4)
	h.OnSearchComplete(ctx, "k5.clq", 4, time.Millisecond, nil)
	h.OnLoadComplete(ctx, "bad.clq", 0, 0, 0, context.Canceled)
	h.OnResponse(ctx, "GET", "/v1/runs", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"hook", "cache hit", "kind=result", "improved", "search done", "k5.clq", "load failed", "/v1/runs"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.New(&buf))
	h.OnCacheMiss(context.Background(), "artifact")
	if buf.Len() != 0 {
		t.Errorf("info-level logger wrote %q", buf.String())
	}
}

type improveCounter struct {
	noop
	calls, best int
}

func (c *improveCounter) OnImprove(_ context.Context, _ string, _, size int) {
	c.calls++
	c.best = size
}
