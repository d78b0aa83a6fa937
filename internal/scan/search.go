package scan

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/icrf-tools/icrlab/internal/plasma"
)

// Scale selects how a parameter range is sampled.
type Scale int

const (
	Linear Scale = iota
	Log
)

// ParamSpec is one sampled search dimension.
type ParamSpec struct {
	Name  string
	Min   float64
	Max   float64
	Scale Scale
}

// Window is an inclusive acceptance interval on the resonance radius.
type Window struct {
	Min float64
	Max float64
}

func (w Window) Contains(x float64) bool {
	return w.Min <= x && x <= w.Max
}

// Hit is one accepted parameter sample.
type Hit struct {
	Current   float64
	Frequency float64
	Radius    float64
}

// SearchConfig drives a random search for operating points whose
// resonance layer lands inside Target.
type SearchConfig struct {
	Current   ParamSpec
	Frequency ParamSpec
	Ion       plasma.Ion
	Harmonic  int
	Target    Window
	Iters     int64
	MaxHits   int
	Seed      int64
}

// SearchResult summarizes a finished search. Tried counts every draw,
// including samples rejected as physically degenerate.
type SearchResult struct {
	Hits     []Hit
	Tried    int64
	Accepted int64
}

// HitRate is the fraction of tried samples that landed in the window.
func (r *SearchResult) HitRate() float64 {
	if r.Tried == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Tried)
}

func sampleOne(rng *rand.Rand, p ParamSpec) (float64, error) {
	if p.Max < p.Min {
		return 0, fmt.Errorf("param %s: Max < Min", p.Name)
	}
	switch p.Scale {
	case Linear:
		return p.Min + rng.Float64()*(p.Max-p.Min), nil
	case Log:
		if p.Min <= 0 || p.Max <= 0 {
			return 0, fmt.Errorf("param %s: log sampling requires Min>0 and Max>0 (got Min=%g Max=%g)", p.Name, p.Min, p.Max)
		}
		lnMin := math.Log(p.Min)
		lnMax := math.Log(p.Max)
		return math.Exp(lnMin + rng.Float64()*(lnMax-lnMin)), nil
	default:
		return 0, fmt.Errorf("param %s: unknown scale", p.Name)
	}
}

// Search samples (current, frequency) pairs until Iters draws are done
// or ctx is cancelled. Up to MaxHits accepted samples are kept; the
// counters keep running after the capture buffer fills.
func Search(ctx context.Context, cfg SearchConfig) (*SearchResult, error) {
	if err := cfg.Ion.Validate(); err != nil {
		return nil, err
	}
	if cfg.Harmonic < 1 {
		return nil, fmt.Errorf("%w: harmonic must be >= 1, got %d", plasma.ErrInvalidArgument, cfg.Harmonic)
	}
	if cfg.Iters < 1 {
		return nil, fmt.Errorf("%w: iteration count must be positive, got %d", plasma.ErrInvalidArgument, cfg.Iters)
	}
	if cfg.Target.Max < cfg.Target.Min {
		return nil, fmt.Errorf("%w: target window [%g, %g] is empty", plasma.ErrInvalidArgument, cfg.Target.Min, cfg.Target.Max)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	res := &SearchResult{Hits: make([]Hit, 0, cfg.MaxHits)}

	for i := int64(0); i < cfg.Iters; i++ {
		if i%4096 == 0 {
			select {
			case <-ctx.Done():
				slog.Info("search cancelled", "tried", res.Tried, "accepted", res.Accepted)
				return res, ctx.Err()
			default:
			}
		}

		amps, err := sampleOne(rng, cfg.Current)
		if err != nil {
			return nil, err
		}
		freq, err := sampleOne(rng, cfg.Frequency)
		if err != nil {
			return nil, err
		}

		res.Tried++
		r, err := plasma.ResonanceRadius(amps, freq, cfg.Ion, cfg.Harmonic)
		if err != nil {
			// a sampled range may brush zero current; skip, don't abort
			continue
		}

		if cfg.Target.Contains(r) {
			res.Accepted++
			if len(res.Hits) < cfg.MaxHits {
				res.Hits = append(res.Hits, Hit{Current: amps, Frequency: freq, Radius: r})
			}
		}
	}

	slog.Debug("search finished", "tried", res.Tried, "accepted", res.Accepted, "rate", res.HitRate())
	return res, nil
}
