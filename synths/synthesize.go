package synths

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/HishamYahya/gollm/binds"
	"github.com/HishamYahya/gollm/checks"
	"github.com/HishamYahya/gollm/funcspecs"
	"github.com/HishamYahya/gollm/generators"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/parsers"
	"github.com/HishamYahya/gollm/prompts"
	"github.com/HishamYahya/gollm/vars"
)

// retries per attempt for transient provider failures
const providerRetries = 3

// RetryBackoff is the delay before re-calling the provider after a
// transient failure. It doubles per retry.
type RetryBackoff time.Duration

func (Module) RetryBackoff() RetryBackoff {
	return RetryBackoff(time.Second)
}

type state struct {
	spec        funcspecs.Spec
	fingerprint string
	generator   generators.Generator
	sampling    generators.SamplingParams
	maxAttempts int

	attempt     int
	feedback    string
	diagnostics []string
	completion  string
	source      string
}

type phase func(ctx context.Context, s state) (phase, state, error)

// Synthesize runs the generate-validate loop until a candidate passes
// every example or the attempt budget runs out. It returns validated
// source; binding it is the caller's concern.
type Synthesize func(
	ctx context.Context,
	spec funcspecs.Spec,
	fingerprint string,
	generator generators.Generator,
	sampling generators.SamplingParams,
	maxAttempts int,
) (source string, err error)

func (Module) Synthesize(
	compile binds.Compile,
	check checks.Check,
	countTokens generators.BPETokenCounter,
	retryBackoff RetryBackoff,
	logger logs.Logger,
) Synthesize {

	var generate, validate phase

	generate = func(ctx context.Context, s state) (phase, state, error) {
		if s.attempt >= s.maxAttempts {
			return nil, s, &ExhaustedError{
				Fingerprint: s.fingerprint,
				Attempts:    s.attempt,
				Diagnostics: s.diagnostics,
			}
		}
		s.attempt++

		params := s.sampling
		if params.Seed == nil && s.attempt > 1 {
			// resample, otherwise a deterministic provider would loop on
			// the same bad candidate
			params.Seed = vars.PtrTo(rand.Int64())
		}

		prompt := prompts.DefFunction(s.spec, s.feedback)
		numTokens, err := countTokens(prompt)
		if err != nil {
			numTokens = -1
		}
		if budget := s.generator.Args().ContextTokens; budget > 0 && numTokens > budget {
			return nil, s, fmt.Errorf("prompt is %d tokens, over the %d context budget of %s",
				numTokens, budget, s.generator.Args().Model)
		}
		logger.DebugContext(ctx, "generating",
			slog.String("fingerprint", s.fingerprint),
			slog.Int("attempt", s.attempt),
			slog.Int("prompt_tokens", numTokens),
		)

		var completion string
		for retry := 0; ; retry++ {
			var err error
			completion, err = s.generator.Complete(ctx, prompt, params)
			if err == nil {
				break
			}
			if !errors.Is(err, generators.ErrRetryable) || retry >= providerRetries-1 {
				return nil, s, err
			}
			backoff := time.Duration(retryBackoff) << retry
			logger.WarnContext(ctx, "transient provider error",
				slog.Any("error", err),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, s, ctx.Err()
			}
		}

		s.completion = completion
		return validate, s, nil
	}

	validate = func(ctx context.Context, s state) (phase, state, error) {
		source, err := parsers.Extract(s.completion)
		if err != nil {
			var extractErr parsers.ExtractionError
			if !errors.As(err, &extractErr) {
				return nil, s, err
			}
			s.diagnostics = append(s.diagnostics, err.Error())
			s.feedback = "Your previous reply contained no valid function definition. " +
				"Reply with exactly one Starlark function inside a fenced code block."
			return generate, s, nil
		}

		fn, err := compile(s.fingerprint, source)
		if err != nil {
			var bindErr binds.BindingError
			if !errors.As(err, &bindErr) {
				return nil, s, err
			}
			s.diagnostics = append(s.diagnostics, err.Error())
			s.feedback = fmt.Sprintf(
				"The code above fails to run: %s\nPlease fix the code.",
				bindErr.Reason,
			)
			return generate, s, nil
		}

		results, passed := check(ctx, fn, s.spec.Examples)
		if !passed {
			feedback := checks.Feedback(results)
			s.diagnostics = append(s.diagnostics, failureLine(results))
			s.feedback = feedback
			return generate, s, nil
		}

		s.source = source
		return nil, s, nil
	}

	return func(
		ctx context.Context,
		spec funcspecs.Spec,
		fingerprint string,
		generator generators.Generator,
		sampling generators.SamplingParams,
		maxAttempts int,
	) (string, error) {
		s := state{
			spec:        spec,
			fingerprint: fingerprint,
			generator:   generator,
			sampling:    sampling,
			maxAttempts: maxAttempts,
		}
		p := generate
		for p != nil {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			var err error
			p, s, err = p(ctx, s)
			if err != nil {
				return "", err
			}
		}
		return s.source, nil
	}
}

func failureLine(results []checks.Result) string {
	failed := 0
	var firstErr error
	for _, result := range results {
		if result.Passed {
			continue
		}
		failed++
		if firstErr == nil {
			firstErr = result.Err
		}
	}
	if firstErr != nil {
		return fmt.Sprintf("%d of %d example(s) failed, first error: %s", failed, len(results), firstErr)
	}
	return fmt.Sprintf("%d of %d example(s) failed", failed, len(results))
}
