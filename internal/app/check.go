package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/envtest"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// checkSeed seeds the determinism check.
const checkSeed = 42

// Check makes every environment this binary can run, reports the ones that
// were skipped, and verifies that the deterministic ones repeat their first
// transition under the same seed.
func (a *App) Check(ctx context.Context) error {
	ctx = a.withLogger(ctx)

	fx, err := envtest.Load(ctx, a.registry)
	if err != nil {
		return err
	}
	defer func() {
		if err := fx.CloseAll(); err != nil {
			a.logger.Warn("Failed to close environments.", "error", err)
		}
	}()

	var failed int
	for i, e := range fx.AllTestingInitialisedEnvs {
		spec := fx.AllTestingEnvSpecs[i]
		if spec.Nondeterministic {
			fmt.Fprintf(a.outW, "ok    %s (nondeterministic, not replayed)\n", spec.ID)
			continue
		}
		if err := checkDeterminism(e, spec.ID); err != nil {
			failed++
			fmt.Fprintf(a.outW, "FAIL  %s: %v\n", spec.ID, err)
			continue
		}
		fmt.Fprintf(a.outW, "ok    %s\n", spec.ID)
	}
	for _, s := range fx.Skipped {
		fmt.Fprintf(a.outW, "skip  %s: %v\n", s.ID, s.Err)
	}

	fmt.Fprintf(a.outW, "\n%d testable (%d gym, %d mujoco), %d skipped, %d failed\n",
		len(fx.AllTestingInitialisedEnvs), len(fx.GymTestingEnvSpecs), len(fx.MujocoTestingEnvSpecs), len(fx.Skipped), failed)
	if failed > 0 {
		return fmt.Errorf("%d environments failed the determinism check", failed)
	}
	return nil
}

// checkDeterminism resets e twice with the same seed, takes the same action
// after each reset, and compares the outcomes.
func checkDeterminism(e env.Env, id string) error {
	if e.ActionSpace() == nil {
		return errors.New("environment has no action space")
	}
	if e.ObservationSpace() == nil {
		return errors.New("environment has no observation space")
	}
	action := e.ActionSpace().Sample(spaces.NewRand(checkSeed))

	run := func() ([]any, error) {
		obs, info, err := e.Reset(env.WithSeed(checkSeed))
		if err != nil {
			return nil, fmt.Errorf("reset: %w", err)
		}
		if !e.ObservationSpace().Contains(obs) {
			return nil, errors.New("reset observation is outside the observation space")
		}
		res, err := e.Step(action)
		if err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}
		return []any{obs, info, res.Observation, res.Reward, res.Terminated, res.Truncated, res.Info}, nil
	}

	first, err := run()
	if err != nil {
		return err
	}
	second, err := run()
	if err != nil {
		return err
	}
	return envtest.CheckEquals(first, second, id+" replay: ")
}
