package detector

import (
	"math"
	"math/rand"
	"sort"
)

const (
	defaultTreeCount = 100
	maxSampleSize    = 256
	contamination    = 0.10
)

// treeNode is a node of an isolation tree. Leaves keep the size of the
// partition that reached them for the expected-path-length adjustment.
type treeNode struct {
	splitDim int
	splitVal float64
	left     *treeNode
	right    *treeNode
	size     int
}

// isolationForest is an ensemble of isolation trees with the score/label
// contract of the usual library implementations: Score returns the opposite
// of the anomaly score (more negative means more anomalous) and the outlier
// label is a threshold at the contamination quantile of the training scores.
type isolationForest struct {
	trees      []*treeNode
	sampleSize int
	dims       int
	offset     float64
}

// fitForest trains an isolation forest over the supplied samples. The caller
// guarantees a non-empty, rectangular matrix.
func fitForest(data [][]float64, rng *rand.Rand) *isolationForest {
	sampleSize := len(data)
	if sampleSize > maxSampleSize {
		sampleSize = maxSampleSize
	}
	heightLimit := int(math.Ceil(math.Log2(float64(sampleSize)))) + 1

	f := &isolationForest{
		trees:      make([]*treeNode, 0, defaultTreeCount),
		sampleSize: sampleSize,
		dims:       len(data[0]),
	}

	for i := 0; i < defaultTreeCount; i++ {
		sample := subsample(data, sampleSize, rng)
		f.trees = append(f.trees, buildTree(sample, 0, heightLimit, rng))
	}

	// Label threshold: the contamination quantile of the training scores.
	scores := make([]float64, len(data))
	for i, x := range data {
		scores[i] = f.Score(x)
	}
	sort.Float64s(scores)
	idx := int(contamination * float64(len(scores)))
	if idx >= len(scores) {
		idx = len(scores) - 1
	}
	f.offset = scores[idx]

	return f
}

// subsample draws sampleSize rows without replacement
func subsample(data [][]float64, sampleSize int, rng *rand.Rand) [][]float64 {
	if sampleSize >= len(data) {
		return data
	}
	out := make([][]float64, sampleSize)
	for i, j := range rng.Perm(len(data))[:sampleSize] {
		out[i] = data[j]
	}
	return out
}

func buildTree(points [][]float64, depth, heightLimit int, rng *rand.Rand) *treeNode {
	if depth >= heightLimit || len(points) <= 1 {
		return &treeNode{size: len(points)}
	}

	dims := len(points[0])
	// Collect dimensions that can still be split
	splittable := make([]int, 0, dims)
	for d := 0; d < dims; d++ {
		lo, hi := minMax(points, d)
		if hi > lo {
			splittable = append(splittable, d)
		}
	}
	if len(splittable) == 0 {
		return &treeNode{size: len(points)}
	}

	dim := splittable[rng.Intn(len(splittable))]
	lo, hi := minMax(points, dim)
	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, p := range points {
		if p[dim] < split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{size: len(points)}
	}

	return &treeNode{
		splitDim: dim,
		splitVal: split,
		left:     buildTree(left, depth+1, heightLimit, rng),
		right:    buildTree(right, depth+1, heightLimit, rng),
		size:     len(points),
	}
}

func minMax(points [][]float64, dim int) (float64, float64) {
	lo, hi := points[0][dim], points[0][dim]
	for _, p := range points[1:] {
		if p[dim] < lo {
			lo = p[dim]
		}
		if p[dim] > hi {
			hi = p[dim]
		}
	}
	return lo, hi
}

// pathLength walks x down the tree and returns the adjusted path length
func pathLength(x []float64, node *treeNode, depth float64) float64 {
	if node.left == nil {
		return depth + averagePathLength(node.size)
	}
	if x[node.splitDim] < node.splitVal {
		return pathLength(x, node.left, depth+1)
	}
	return pathLength(x, node.right, depth+1)
}

// averagePathLength is c(n), the expected path length of an unsuccessful BST
// search over n points
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}

const eulerGamma = 0.5772156649

// Score returns the opposite of the anomaly score for x, in (-1, 0)
func (f *isolationForest) Score(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += pathLength(x, t, 0)
	}
	mean := sum / float64(len(f.trees))
	anomalyScore := math.Pow(2, -mean/averagePathLength(f.sampleSize))
	return -anomalyScore
}

// Predict returns true when x is labeled an outlier
func (f *isolationForest) Predict(x []float64) bool {
	return f.Score(x) < f.offset
}
