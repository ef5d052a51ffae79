package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostagemKeyPrefix = "postagem:%d"
	TemaKeyPrefix     = "tema:%d"
	PrincipalPrefix   = "principal:%s"
)

const (
	PostagemTTL  = 10 * time.Minute
	TemaTTL      = 30 * time.Minute
	PrincipalTTL = 5 * time.Minute
)

func PostagemKey(id uint) string {
	return fmt.Sprintf(PostagemKeyPrefix, id)
}

func TemaKey(id uint) string {
	return fmt.Sprintf(TemaKeyPrefix, id)
}

// PrincipalKey is keyed by login e-mail.
func PrincipalKey(usuario string) string {
	return fmt.Sprintf(PrincipalPrefix, usuario)
}

// Invalidate removes the given keys. Errors are ignored.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

func InvalidatePostagens(ctx context.Context, ids ...uint) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, PostagemKey(id))
	}
	Invalidate(ctx, keys...)
}

func InvalidateTema(ctx context.Context, id uint) {
	Invalidate(ctx, TemaKey(id))
}

func InvalidatePrincipal(ctx context.Context, usuario string) {
	Invalidate(ctx, PrincipalKey(usuario))
}
