package model

import (
	"context"

	"github.com/agokrani/deepeval/pkg/cache"
	"github.com/agokrani/deepeval/pkg/core"
)

// Cached wraps a model with the on-disk response cache so repeated
// judge calls over the same prompt are served locally.
type Cached struct {
	Model core.Model
	Cache *cache.Cache
}

func (c Cached) Name() string {
	if c.Model == nil {
		return ""
	}
	return c.Model.Name()
}

func (c Cached) Generate(ctx context.Context, prompt string, opts core.GenerateOptions) (core.Response, error) {
	if c.Model == nil {
		return core.Response{}, nil
	}
	if c.Cache != nil {
		if resp, ok := c.Cache.Get(c.Name(), prompt, opts); ok {
			return resp, nil
		}
	}
	resp, err := c.Model.Generate(ctx, prompt, opts)
	if err != nil {
		return core.Response{}, err
	}
	if c.Cache != nil {
		_ = c.Cache.Set(c.Name(), prompt, opts, resp)
	}
	return resp, nil
}
