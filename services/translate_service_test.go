package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateBatchEnglishShortCircuit(t *testing.T) {
	rpc := newFakeTranslator("it:")
	svc := NewTranslateService(newFakeTranslationCache(), rpc)

	for _, lang := range []string{"en", "en-GB", "en-US"} {
		out, err := svc.TranslateBatch(context.Background(), []string{"Anything"}, lang, "")
		assert.NoError(t, err)
		assert.Equal(t, []string{"Anything"}, out)
	}
	assert.Equal(t, 0, rpc.calls)
}

func TestTranslateBatchBlankInputs(t *testing.T) {
	rpc := newFakeTranslator("it:")
	svc := NewTranslateService(newFakeTranslationCache(), rpc)

	out, err := svc.TranslateBatch(context.Background(), []string{"", "  ", "Hello"}, "it", "en")
	assert.NoError(t, err)
	assert.Equal(t, []string{"", "", "it:Hello"}, out)
	assert.Equal(t, []string{"Hello"}, rpc.textsSeen)
}

func TestTranslateBatchIdempotentCache(t *testing.T) {
	rpc := newFakeTranslator("it:")
	svc := NewTranslateService(newFakeTranslationCache(), rpc)

	first, err := svc.TranslateBatch(context.Background(), []string{"Hello"}, "it", "en")
	assert.NoError(t, err)

	second, err := svc.TranslateBatch(context.Background(), []string{"Hello"}, "it", "en")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, rpc.calls, "warm cache must not call the RPC again")
}

func TestTranslateBatchSingleRPCPerCall(t *testing.T) {
	rpc := newFakeTranslator("it:")
	svc := NewTranslateService(newFakeTranslationCache(), rpc)

	out, err := svc.TranslateBatch(context.Background(), []string{"One", "Two", "Three"}, "it", "en")
	assert.NoError(t, err)
	assert.Equal(t, []string{"it:One", "it:Two", "it:Three"}, out)
	assert.Equal(t, 1, rpc.calls, "all misses of one call go out as one batch")
}

func TestTranslateBatchMixedHitsAndMisses(t *testing.T) {
	cache := newFakeTranslationCache()
	rpc := newFakeTranslator("it:")
	svc := NewTranslateService(cache, rpc)

	_, err := svc.TranslateBatch(context.Background(), []string{"Hello"}, "it", "en")
	assert.NoError(t, err)

	out, err := svc.TranslateBatch(context.Background(), []string{"Hello", "World"}, "it", "en")
	assert.NoError(t, err)
	assert.Equal(t, []string{"it:Hello", "it:World"}, out)
	assert.Equal(t, 2, rpc.calls)
	assert.Equal(t, []string{"Hello", "World"}, rpc.textsSeen, "cached text must not hit the RPC twice")
}

func TestPutIfAbsentKeepsFirstWriter(t *testing.T) {
	cache := newFakeTranslationCache()
	key := CacheKey("en", "it", "Hello")

	assert.NoError(t, cache.PutIfAbsent(context.Background(), key, "Ciao"))
	assert.NoError(t, cache.PutIfAbsent(context.Background(), key, "Salve"))

	v, ok, err := cache.Get(context.Background(), key)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Ciao", v)
}

func TestCacheKeyIsStablePerTriple(t *testing.T) {
	assert.Equal(t, CacheKey("en", "it", "Hello"), CacheKey("en", "it", "Hello"))
	assert.NotEqual(t, CacheKey("en", "it", "Hello"), CacheKey("en", "fr", "Hello"))
	assert.NotEqual(t, CacheKey("en", "it", "Hello"), CacheKey("en", "it", "World"))
}
