// Package links swaps stored S3 object keys for time-limited presigned GET
// URLs on projects leaving the API. Resolution is best-effort: a signing
// failure leaves the raw key in place and never fails the response.
package links

import (
	"context"
	"log"
	"time"

	"github.com/bionano-bdd/bddb-backend/internal/catalog/domain"
)

const (
	// ListExpiry bounds URLs handed out on gallery listings; they are
	// fetched in a batch and viewed briefly.
	ListExpiry = 1800 * time.Second
	// DetailExpiry bounds URLs on single-project views, which stay open
	// longer.
	DetailExpiry = 3600 * time.Second
)

// Presigner issues a retrievable URL for an object key, valid for the given
// window.
type Presigner interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Resolver resolves cover and hero image keys on projects. An optional URL
// cache sits in front of the signer.
type Resolver struct {
	signer Presigner
	cache  *URLCache
}

func NewResolver(signer Presigner, cache *URLCache) *Resolver {
	return &Resolver{signer: signer, cache: cache}
}

// ResolveList resolves images on a listing page in place, with the short
// listing expiry. Callers pass only the slice being returned, never the
// full candidate set.
func (r *Resolver) ResolveList(ctx context.Context, projects []domain.Project) {
	for i := range projects {
		r.resolve(ctx, &projects[i], ListExpiry)
	}
}

// ResolveDetail resolves a single project's images with the longer detail
// expiry. The original object keys are preserved on the record so an update
// issued from the detail view can send them back unchanged.
func (r *Resolver) ResolveDetail(ctx context.Context, p *domain.Project) {
	p.CoverImageKey = p.CoverImage
	if p.HeroImage != nil {
		p.HeroImageKey = *p.HeroImage
	}
	r.resolve(ctx, p, DetailExpiry)
}

func (r *Resolver) resolve(ctx context.Context, p *domain.Project, expiry time.Duration) {
	if p.CoverImage != "" {
		if url, err := r.signedURL(ctx, p.CoverImage, expiry); err == nil {
			p.CoverImage = url
		} else {
			log.Printf("[warn] project=%d presign cover failed: %v", p.ID, err)
		}
	}
	if p.HeroImage != nil && *p.HeroImage != "" {
		if url, err := r.signedURL(ctx, *p.HeroImage, expiry); err == nil {
			p.HeroImage = &url
		} else {
			log.Printf("[warn] project=%d presign hero failed: %v", p.ID, err)
		}
	}
}

func (r *Resolver) signedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if r.cache != nil {
		if url, ok := r.cache.Get(ctx, key, expiry); ok {
			return url, nil
		}
	}
	url, err := r.signer.PresignGet(ctx, key, expiry)
	if err != nil {
		return "", err
	}
	if r.cache != nil {
		r.cache.Put(ctx, key, expiry, url)
	}
	return url, nil
}
