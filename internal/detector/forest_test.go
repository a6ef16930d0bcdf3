package detector

import (
	"math/rand"
	"testing"
)

func TestForestScoreRange(t *testing.T) {
	data := trainingData(100, 11)
	f := fitForest(data, rand.New(rand.NewSource(11)))

	for i, x := range data {
		score := f.Score(x)
		if score >= 0 || score <= -1 {
			t.Fatalf("score of sample %d = %v, want in (-1, 0)", i, score)
		}
	}
}

func TestForestOffsetQuantile(t *testing.T) {
	data := trainingData(200, 13)
	f := fitForest(data, rand.New(rand.NewSource(13)))

	flagged := 0
	for _, x := range data {
		if f.Predict(x) {
			flagged++
		}
	}

	// The threshold sits at the contamination quantile of the training
	// scores, so roughly a tenth of the window is labeled outlier.
	if flagged < 5 || flagged > 40 {
		t.Errorf("flagged %d of 200 training samples, want near the contamination quantile", flagged)
	}
}

func TestForestIsolatesExtremePoint(t *testing.T) {
	data := trainingData(150, 17)
	f := fitForest(data, rand.New(rand.NewSource(17)))

	outlier := []float64{95, 95, 950, 45, 60}
	if !f.Predict(outlier) {
		t.Error("extreme point should be labeled an outlier")
	}

	// The outlier must score lower (more anomalous) than any central point
	central := []float64{35, 45, 100, 1, 300}
	if f.Score(outlier) >= f.Score(central) {
		t.Errorf("outlier score %v should be below central score %v", f.Score(outlier), f.Score(central))
	}
}

func TestAveragePathLength(t *testing.T) {
	if got := averagePathLength(1); got != 0 {
		t.Errorf("averagePathLength(1) = %v, want 0", got)
	}
	if got := averagePathLength(0); got != 0 {
		t.Errorf("averagePathLength(0) = %v, want 0", got)
	}
	// c(n) grows with n
	if averagePathLength(256) <= averagePathLength(16) {
		t.Error("averagePathLength should grow with n")
	}
}
