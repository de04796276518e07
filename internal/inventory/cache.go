package inventory

import (
	"context"
	"time"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
)

// fetchers narrows the client surface the cache needs, so tests can feed
// canned data without a server.
type fetchers interface {
	Objects(ctx context.Context) ([]Object, error)
	SLADomains(ctx context.Context) ([]SLADomain, error)
}

// Cache holds the object inventory and the SLA-domain table between calls
// inside one session. It is constructed by the caller and passed to the
// functions that need it; there is no package-level state. Not safe for
// concurrent use.
type Cache struct {
	fetch       fetchers
	objects     []Object
	slaDomains  []SLADomain
	refreshedAt time.Time
}

func NewCache(fetch fetchers) *Cache {
	return &Cache{fetch: fetch}
}

// NewClientCache builds a cache backed by the live API client.
func NewClientCache(c *client.Client) *Cache {
	return NewCache(clientFetchers{c})
}

type clientFetchers struct {
	c *client.Client
}

func (f clientFetchers) Objects(ctx context.Context) ([]Object, error) {
	return GetObjects(ctx, f.c)
}

func (f clientFetchers) SLADomains(ctx context.Context) ([]SLADomain, error) {
	return GetSLADomains(ctx, f.c)
}

// Objects returns the cached inventory, fetching on first use.
func (c *Cache) Objects(ctx context.Context) ([]Object, error) {
	if c.objects == nil {
		objects, err := c.fetch.Objects(ctx)
		if err != nil {
			return nil, err
		}
		c.objects = objects
		c.refreshedAt = time.Now().UTC()
	}
	return c.objects, nil
}

// SLADomains returns the cached SLA-domain table, fetching on first use.
func (c *Cache) SLADomains(ctx context.Context) ([]SLADomain, error) {
	if c.slaDomains == nil {
		domains, err := c.fetch.SLADomains(ctx)
		if err != nil {
			return nil, err
		}
		c.slaDomains = domains
		c.refreshedAt = time.Now().UTC()
	}
	return c.slaDomains, nil
}

// Refresh discards and refetches everything the cache holds.
func (c *Cache) Refresh(ctx context.Context) error {
	c.Invalidate()
	if _, err := c.Objects(ctx); err != nil {
		return err
	}
	if _, err := c.SLADomains(ctx); err != nil {
		return err
	}
	return nil
}

// Invalidate drops the cached data; the next read refetches.
func (c *Cache) Invalidate() {
	c.objects = nil
	c.slaDomains = nil
	c.refreshedAt = time.Time{}
}

// RefreshedAt reports when the cache last fetched, zero if never.
func (c *Cache) RefreshedAt() time.Time {
	return c.refreshedAt
}
