package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Convert hooks
	p := NoopConvertHooks{}
	p.OnToGraph("workflow", 3, 2, time.Millisecond, nil)
	p.OnToDefinition("pipeline", 4, 3, time.Millisecond, nil)
	p.OnLayout(3, 0, 0, time.Millisecond)
	p.OnCanvasFallback("incomplete", 1)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Convert().(NoopConvertHooks); !ok {
		t.Error("Convert() should return NoopConvertHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customConvert := &testConvertHooks{}
	SetConvertHooks(customConvert)
	if Convert() != customConvert {
		t.Error("SetConvertHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Convert().(NoopConvertHooks); !ok {
		t.Error("Reset() should restore NoopConvertHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testConvertHooks{}
	SetConvertHooks(custom)

	// Setting nil should be ignored
	SetConvertHooks(nil)

	if Convert() != custom {
		t.Error("SetConvertHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testConvertHooks struct{ NoopConvertHooks }
type testCacheHooks struct{ NoopCacheHooks }
