package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。既存の学習結果は完全に置き換えられる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator は教師あり学習モデルの基本インターフェース
type Estimator interface {
	Fitter
	Predictor
}

// MLERegressor は最尤推定によるノイズ分散を公開する回帰モデルのインターフェース。
// LOOCV はフォールドごとに Clone で独立したインスタンスを作成する
type MLERegressor interface {
	Estimator

	// NoiseVariance は直近の Fit で推定されたノイズ分散 σ² を返す
	NoiseVariance() (float64, error)

	// Clone は同じ設定を持つ未学習の新しいインスタンスを返す
	Clone() MLERegressor
}

// RangePredictor は入力区間 [xmin, xmax] 上の等間隔な点で予測するモデルのインターフェース。
// 入力点と予測値を返す
type RangePredictor interface {
	PredictRange(nPoints int, xmin, xmax float64) (*mat.VecDense, *mat.VecDense, error)
}

// Scorer は決定係数 R² を計算できるモデルのインターフェース
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// ParameterGetter はハイパーパラメータを公開するモデルのインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
