package synths

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/HishamYahya/gollm/binds"
	"github.com/HishamYahya/gollm/caches"
	"github.com/HishamYahya/gollm/funcspecs"
	"github.com/HishamYahya/gollm/generators"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/prompts"
	"github.com/HishamYahya/gollm/vars"
	"golang.org/x/sync/singleflight"
)

// Def turns a spec into a callable function: cache lookup, synthesis on
// miss, validation, write-back, bind. Concurrent calls with the same
// fingerprint share one synthesis.
type Def func(ctx context.Context, spec funcspecs.Spec, options Options) (*binds.BoundFunction, error)

func (Module) Def(
	store *caches.Store,
	bind binds.Bind,
	synthesize Synthesize,
	getGenerator generators.GetGenerator,
	getDefault generators.GetDefaultGenerator,
	defaultMaxAttempts MaxAttempts,
	logger logs.Logger,
) Def {
	var group singleflight.Group
	return func(ctx context.Context, spec funcspecs.Spec, options Options) (*binds.BoundFunction, error) {
		if spec.TemplateVersion == "" {
			spec.TemplateVersion = prompts.Version
		}
		fingerprint := funcspecs.Fingerprint(spec)

		fn, err, _ := group.Do(fingerprint, func() (any, error) {

			if !options.DisableCache {
				if entry, ok := store.Lookup(fingerprint); ok {
					fn, err := bind(fingerprint, entry.Source)
					if err == nil {
						fn.Model = entry.Model
						logger.DebugContext(ctx, "cache hit",
							slog.String("fingerprint", fingerprint),
						)
						return fn, nil
					}
					// entry written by an incompatible version, resynthesize
					logger.WarnContext(ctx, "cached entry does not bind",
						slog.String("fingerprint", fingerprint),
						slog.Any("error", err),
					)
				}
			}

			var generator generators.Generator
			var err error
			if options.Model != "" {
				generator, err = getGenerator(options.Model)
			} else {
				generator, err = getDefault()
			}
			if err != nil {
				return nil, err
			}

			sampling := vars.DerefOrZero(options.Sampling)
			maxAttempts := vars.FirstNonZero(
				options.MaxAttempts,
				int(defaultMaxAttempts),
			)

			source, err := synthesize(ctx, spec, fingerprint, generator, sampling, maxAttempts)
			if err != nil {
				return nil, err
			}

			entry := caches.Entry{
				Fingerprint:     fingerprint,
				Source:          source,
				Model:           generator.Args().Model,
				TemplateVersion: spec.TemplateVersion,
			}
			if options.Sampling != nil {
				if data, err := json.Marshal(options.Sampling); err == nil {
					entry.Sampling = data
				}
			}
			// the bound function is already validated, a failed write only
			// costs the next process a resynthesis
			if err := store.Store(entry); err != nil {
				logger.WarnContext(ctx, "cannot write cache entry",
					slog.String("fingerprint", fingerprint),
					slog.Any("error", err),
				)
			}

			fn, err := bind(fingerprint, source)
			if err != nil {
				return nil, err
			}
			fn.Model = generator.Args().Model
			return fn, nil
		})
		if err != nil {
			return nil, err
		}
		return fn.(*binds.BoundFunction), nil
	}
}

// Invalidate drops the cached artifact for a spec, forcing the next Def
// to synthesize again.
type Invalidate func(spec funcspecs.Spec) error

func (Module) Invalidate(
	store *caches.Store,
) Invalidate {
	return func(spec funcspecs.Spec) error {
		if spec.TemplateVersion == "" {
			spec.TemplateVersion = prompts.Version
		}
		return store.Invalidate(funcspecs.Fingerprint(spec))
	}
}
