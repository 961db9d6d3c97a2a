package model

// fold is one contiguous test block [lo, hi) of a k-fold split.
type fold struct {
	lo, hi int
}

// kfold splits n rows into contiguous, unshuffled folds. The first n%k folds take one extra
// row. k is clamped to n.
func kfold(n, k int) []fold {
	if k > n {
		k = n
	}
	if k < 2 {
		k = 2
	}
	folds := make([]fold, 0, k)
	size, extra := n/k, n%k
	lo := 0
	for i := 0; i < k; i++ {
		hi := lo + size
		if i < extra {
			hi++
		}
		folds = append(folds, fold{lo: lo, hi: hi})
		lo = hi
	}
	return folds
}

// split returns the training and test partitions of xs, ys for f.
func (f fold) split(xs, ys []float64) (trainX, trainY, testX, testY []float64) {
	trainX = make([]float64, 0, len(xs)-(f.hi-f.lo))
	trainY = make([]float64, 0, cap(trainX))
	trainX = append(append(trainX, xs[:f.lo]...), xs[f.hi:]...)
	trainY = append(append(trainY, ys[:f.lo]...), ys[f.hi:]...)
	return trainX, trainY, xs[f.lo:f.hi], ys[f.lo:f.hi]
}

// fitFunc trains a predictor on one partition.
type fitFunc func(xs, ys []float64) Predictor

// foldScore trains on everything outside f and returns the R² on f.
func foldScore(fit fitFunc, f fold, xs, ys []float64) float64 {
	trainX, trainY, testX, testY := f.split(xs, ys)
	return r2(predictAll(fit(trainX, trainY), testX), testY)
}

// crossValidate returns the mean fold R² of fit over contiguous folds.
func crossValidate(fit fitFunc, xs, ys []float64, folds int) float64 {
	var sum float64
	fs := kfold(len(xs), folds)
	for _, f := range fs {
		sum += foldScore(fit, f, xs, ys)
	}
	return sum / float64(len(fs))
}
