package detector

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"
)

// MinTrainSamples is the minimum window size; training with a window of this
// size or smaller leaves the engine in its prior state.
const MinTrainSamples = 20

// ErrInsufficientSamples is returned by Train when the window is too small
var ErrInsufficientSamples = errors.New("insufficient training samples")

// ErrDimensionMismatch is returned by Train when the sample matrix is ragged
var ErrDimensionMismatch = errors.New("inconsistent feature dimensions")

// Engine holds the outlier model and the rolling baseline behind a single
// lock so that a Train call becomes visible to Detect atomically. Detect
// never fails: any internal scoring problem degrades to the neutral default
// (false, 0.5) so telemetry processing cannot crash.
type Engine struct {
	mu       sync.RWMutex
	forest   *isolationForest
	baseline []float64
	trained  bool

	seed int64
}

// NewEngine creates an untrained engine
func NewEngine() *Engine {
	return &Engine{seed: time.Now().UnixNano()}
}

// NewEngineWithSeed creates an untrained engine with a fixed random seed
func NewEngineWithSeed(seed int64) *Engine {
	return &Engine{seed: seed}
}

// Train fits a fresh outlier model and baseline over the supplied window.
// Each successful call fully replaces the previous model; the swap is atomic
// with respect to Detect.
func (e *Engine) Train(samples [][]float64) error {
	if len(samples) <= MinTrainSamples {
		return ErrInsufficientSamples
	}

	dims := len(samples[0])
	for _, s := range samples {
		if len(s) != dims {
			return ErrDimensionMismatch
		}
	}

	e.mu.Lock()
	seed := e.seed
	e.seed++
	e.mu.Unlock()

	// Fit outside the lock; only the swap below is serialized.
	rng := rand.New(rand.NewSource(seed))
	forest := fitForest(samples, rng)
	baseline := columnMeans(samples)

	e.mu.Lock()
	e.forest = forest
	e.baseline = baseline
	e.trained = true
	e.mu.Unlock()

	return nil
}

// Detect classifies a feature vector. An untrained engine, a malformed
// vector, or a scoring failure all yield the neutral default (false, 0.5).
func (e *Engine) Detect(features []float64) (isAnomaly bool, confidence float64) {
	isAnomaly, confidence, _ = e.DetectWithBaseline(features)
	return isAnomaly, confidence
}

// DetectWithBaseline classifies a feature vector and returns the baseline of
// the same model snapshot that produced the label, so attribution cannot mix
// a label from one training window with the baseline of the next. Neutral
// defaults carry a nil baseline.
func (e *Engine) DetectWithBaseline(features []float64) (isAnomaly bool, confidence float64, baseline []float64) {
	isAnomaly, confidence = false, 0.5

	defer func() {
		if r := recover(); r != nil {
			isAnomaly, confidence, baseline = false, 0.5, nil
		}
	}()

	e.mu.RLock()
	forest, trained := e.forest, e.trained
	var base []float64
	if e.baseline != nil {
		base = make([]float64, len(e.baseline))
		copy(base, e.baseline)
	}
	e.mu.RUnlock()

	if !trained || forest == nil || len(features) != forest.dims {
		return false, 0.5, nil
	}

	score := forest.Score(features)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return false, 0.5, nil
	}

	// Sigmoid transform maps the unbounded raw score into (0, 1)
	confidence = 1 / (1 + math.Exp(score))
	isAnomaly = score < forest.offset
	return isAnomaly, confidence, base
}

// Trained reports whether the engine has a fitted model
func (e *Engine) Trained() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trained
}

// Baseline returns a copy of the per-dimension mean of the last training
// window, or nil when untrained
func (e *Engine) Baseline() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.baseline == nil {
		return nil
	}
	out := make([]float64, len(e.baseline))
	copy(out, e.baseline)
	return out
}

// Attribute finds the dimension of maximum relative deviation between a
// feature vector and a baseline. A missing or short baseline falls back to
// the feature vector itself, which yields zero deviation everywhere and an
// attribution that is arbitrary but deterministic by index order.
func Attribute(features, baseline []float64) (index int, value, base float64) {
	if len(baseline) < len(features) {
		baseline = features
	}

	maxDev := -1.0
	for i, v := range features {
		// +1 in the denominator avoids blow-up near a zero baseline
		dev := math.Abs(v-baseline[i]) / (baseline[i] + 1)
		if dev > maxDev {
			maxDev = dev
			index = i
		}
	}
	return index, features[index], baseline[index]
}

func columnMeans(samples [][]float64) []float64 {
	dims := len(samples[0])
	means := make([]float64, dims)
	for _, s := range samples {
		for i, v := range s {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= float64(len(samples))
	}
	return means
}
