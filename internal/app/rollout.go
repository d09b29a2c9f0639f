package app

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// RolloutResult summarises one episode.
type RolloutResult struct {
	Steps      int
	Return     float64
	Terminated bool
	Truncated  bool
}

// Rollout runs episodes of the environment id with uniformly random actions
// and prints one line per episode. Episode i is reset with seed+i. When
// maxSteps is positive it caps every episode; otherwise the environment must
// have an episode limit of its own.
func (a *App) Rollout(ctx context.Context, id string, episodes, maxSteps int, seed uint64) ([]RolloutResult, error) {
	ctx = a.withLogger(ctx)
	if episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", episodes)
	}
	if maxSteps < 0 {
		return nil, fmt.Errorf("steps must not be negative, got %d", maxSteps)
	}

	var opts []registry.MakeOption
	if a.config.DisableEnvChecker {
		opts = append(opts, registry.DisableEnvChecker())
	}
	e, err := a.registry.Make(ctx, id, opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	if spec := e.Spec(); maxSteps == 0 && (spec == nil || spec.MaxEpisodeSteps == 0) {
		return nil, fmt.Errorf("environment %s has no episode limit, a step limit is required", id)
	}

	rng := spaces.NewRand(seed)
	results := make([]RolloutResult, 0, episodes)
	var total float64
	for ep := range episodes {
		res, err := runEpisode(e, rng, seed+uint64(ep), maxSteps)
		if err != nil {
			return results, fmt.Errorf("episode %d: %w", ep, err)
		}
		a.logger.Debug("Episode finished.", "id", id, "episode", ep, "steps", res.Steps, "return", res.Return)
		fmt.Fprintf(a.outW, "episode %d: steps=%d return=%.3f terminated=%t truncated=%t\n",
			ep, res.Steps, res.Return, res.Terminated, res.Truncated)
		results = append(results, res)
		total += res.Return
	}
	fmt.Fprintf(a.outW, "mean return over %d episodes: %.3f\n", episodes, total/float64(episodes))
	return results, nil
}

func runEpisode(e env.Env, rng *rand.Rand, seed uint64, maxSteps int) (RolloutResult, error) {
	var res RolloutResult
	if _, _, err := e.Reset(env.WithSeed(seed)); err != nil {
		return res, err
	}
	for maxSteps == 0 || res.Steps < maxSteps {
		step, err := e.Step(e.ActionSpace().Sample(rng))
		if err != nil {
			return res, err
		}
		res.Steps++
		res.Return += step.Reward
		res.Terminated, res.Truncated = step.Terminated, step.Truncated
		if step.Done() {
			break
		}
	}
	return res, nil
}
