package links

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

type fakePresigner struct {
	calls int
	fail  bool
}

func (f *fakePresigner) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("signer unavailable")
	}
	return fmt.Sprintf("https://signed.example/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func strptr(s string) *string { return &s }

func TestResolveList(t *testing.T) {
	t.Run("replaces keys with listing-expiry URLs", func(t *testing.T) {
		signer := &fakePresigner{}
		r := NewResolver(signer, nil)

		projects := []domain.Project{
			{ID: 1, CoverImage: "covers/a.png", HeroImage: strptr("heroes/a.png")},
		}
		r.ResolveList(context.Background(), projects)

		assert.Equal(t, "https://signed.example/covers/a.png?expires=1800", projects[0].CoverImage)
		require.NotNil(t, projects[0].HeroImage)
		assert.Equal(t, "https://signed.example/heroes/a.png?expires=1800", *projects[0].HeroImage)
	})

	t.Run("nil hero image is skipped without error", func(t *testing.T) {
		signer := &fakePresigner{}
		r := NewResolver(signer, nil)

		projects := []domain.Project{{ID: 1, CoverImage: "covers/a.png", HeroImage: nil}}
		r.ResolveList(context.Background(), projects)

		assert.Nil(t, projects[0].HeroImage)
		assert.Equal(t, 1, signer.calls)
	})

	t.Run("signing failure leaves the original key", func(t *testing.T) {
		r := NewResolver(&fakePresigner{fail: true}, nil)

		projects := []domain.Project{{ID: 1, CoverImage: "covers/a.png"}}
		r.ResolveList(context.Background(), projects)

		assert.Equal(t, "covers/a.png", projects[0].CoverImage)
	})
}

func TestResolveDetail(t *testing.T) {
	t.Run("preserves original keys and signs with detail expiry", func(t *testing.T) {
		r := NewResolver(&fakePresigner{}, nil)

		p := domain.Project{ID: 1, CoverImage: "covers/a.png", HeroImage: strptr("heroes/a.png")}
		r.ResolveDetail(context.Background(), &p)

		assert.Equal(t, "covers/a.png", p.CoverImageKey)
		assert.Equal(t, "heroes/a.png", p.HeroImageKey)
		assert.Equal(t, "https://signed.example/covers/a.png?expires=3600", p.CoverImage)
	})

	t.Run("no hero leaves the hero key empty", func(t *testing.T) {
		r := NewResolver(&fakePresigner{}, nil)

		p := domain.Project{ID: 1, CoverImage: "covers/a.png"}
		r.ResolveDetail(context.Background(), &p)

		assert.Empty(t, p.HeroImageKey)
	})
}

func TestURLCache(t *testing.T) {
	newCache := func(t *testing.T) (*URLCache, *miniredis.Miniredis) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		return NewURLCache(client), mr
	}

	t.Run("cache hit skips the signer", func(t *testing.T) {
		cache, _ := newCache(t)
		signer := &fakePresigner{}
		r := NewResolver(signer, cache)

		projects := []domain.Project{{ID: 1, CoverImage: "covers/a.png"}}
		r.ResolveList(context.Background(), projects)
		require.Equal(t, 1, signer.calls)

		again := []domain.Project{{ID: 1, CoverImage: "covers/a.png"}}
		r.ResolveList(context.Background(), again)
		assert.Equal(t, 1, signer.calls)
		assert.Equal(t, projects[0].CoverImage, again[0].CoverImage)
	})

	t.Run("listing and detail expiries cache separately", func(t *testing.T) {
		cache, _ := newCache(t)
		signer := &fakePresigner{}
		r := NewResolver(signer, cache)

		list := []domain.Project{{ID: 1, CoverImage: "covers/a.png"}}
		r.ResolveList(context.Background(), list)

		detail := domain.Project{ID: 1, CoverImage: "covers/a.png"}
		r.ResolveDetail(context.Background(), &detail)

		assert.Equal(t, 2, signer.calls)
		assert.NotEqual(t, list[0].CoverImage, detail.CoverImage)
	})

	t.Run("entries expire ahead of the signed URL", func(t *testing.T) {
		cache, mr := newCache(t)
		cache.Put(context.Background(), "covers/a.png", ListExpiry, "https://signed.example/x")

		mr.FastForward(ListExpiry - cacheMargin + time.Second)
		_, ok := cache.Get(context.Background(), "covers/a.png", ListExpiry)
		assert.False(t, ok)
	})
}
