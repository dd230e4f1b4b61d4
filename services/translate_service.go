package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// TranslationCache is a persistent, write-once-per-key store of translated
// strings. PutIfAbsent must not overwrite an existing value: the first writer
// wins and later writers silently no-op.
type TranslationCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	PutIfAbsent(ctx context.Context, key, value string) error
}

// Translator is the external translation RPC, consumed as a black box.
// It must return one translation per input, in order.
type Translator interface {
	Translate(ctx context.Context, texts []string, targetLang, sourceLang string) ([]string, error)
}

// englishTargets short-circuit to identity without touching cache or RPC.
var englishTargets = map[string]bool{
	"en":    true,
	"en-gb": true,
	"en-us": true,
}

type TranslateService struct {
	cache TranslationCache
	rpc   Translator
}

func NewTranslateService(cache TranslationCache, rpc Translator) *TranslateService {
	return &TranslateService{cache: cache, rpc: rpc}
}

// CacheKey is the content-addressed key for one (source, target, text) triple.
func CacheKey(sourceLang, targetLang, text string) string {
	sum := md5.Sum([]byte(sourceLang + "|" + targetLang + "|" + text))
	return hex.EncodeToString(sum[:])
}

// TranslateBatch translates texts into targetLang, order-preserving and
// same-length. Blank inputs map to "". All cache misses of one call are sent
// to the RPC in a single batch; each fresh translation is written to the
// cache with an insert-if-absent so concurrent identical requests cannot
// clobber each other.
func (s *TranslateService) TranslateBatch(ctx context.Context, texts []string, targetLang, sourceLang string) ([]string, error) {
	out := make([]string, len(texts))

	if englishTargets[strings.ToLower(targetLang)] {
		copy(out, texts)
		return out, nil
	}

	var missIdx []int
	var missTexts []string
	var missKeys []string

	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = ""
			continue
		}

		key := CacheKey(sourceLang, targetLang, text)
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("translation cache lookup: %w", err)
		}
		if ok && cached != "" {
			out[i] = cached
			continue
		}

		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
		missKeys = append(missKeys, key)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	translated, err := s.rpc.Translate(ctx, missTexts, targetLang, sourceLang)
	if err != nil {
		return nil, fmt.Errorf("translation rpc: %w", err)
	}
	if len(translated) != len(missTexts) {
		return nil, fmt.Errorf("translation rpc returned %d results for %d texts", len(translated), len(missTexts))
	}

	for j, value := range translated {
		out[missIdx[j]] = value
		// A lost race here is fine: the cache keeps the first writer's
		// value and this response uses the local result.
		if err := s.cache.PutIfAbsent(ctx, missKeys[j], value); err != nil {
			return nil, fmt.Errorf("translation cache write: %w", err)
		}
	}

	return out, nil
}

// Translate is the single-string convenience used by the translate endpoint.
func (s *TranslateService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	res, err := s.TranslateBatch(ctx, []string{text}, targetLang, "")
	if err != nil {
		return "", err
	}
	return res[0], nil
}
