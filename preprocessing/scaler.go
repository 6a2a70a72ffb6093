// Package preprocessing は入力 X のスケーリングを提供する。
// 三角関数基底は周期 1 を前提とするため、入力範囲の正規化に使う。
package preprocessing

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/basisreg/core/model"
	"github.com/YuminosukeSato/basisreg/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// 定数特徴量とみなす範囲・標準偏差の閾値
const constantThreshold = 1e-8

// Scaler は列ごとのアフィン変換 x' = (x - Offset) / Scale を行う変換器
type Scaler interface {
	model.InverseTransformer

	// IsFitted はFit済みかどうかを返す
	IsFitted() bool

	// Clone は同じ設定を持つ未学習のスケーラーを返す
	Clone() Scaler
}

// affine は列ごとのオフセットとスケールを保持する共通部分
type affine struct {
	model.BaseEstimator

	// Offset は各特徴量から引く値
	Offset []float64

	// Scale は各特徴量を割る値（0 にはならない）
	Scale []float64
}

func (a *affine) apply(name, method string, X mat.Matrix, inverse bool) (mat.Matrix, error) {
	if !a.IsFitted() {
		return nil, errors.NewNotFittedError(name, method)
	}

	r, c := X.Dims()
	if c != len(a.Scale) {
		return nil, errors.NewDimensionError(name+"."+method, len(a.Scale), c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(_, j int, v float64) float64 {
		if inverse {
			return v*a.Scale[j] + a.Offset[j]
		}
		return (v - a.Offset[j]) / a.Scale[j]
	}, X)
	return result, nil
}

// StandardScaler はデータを平均0、標準偏差1に変換する
type StandardScaler struct {
	affine

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd}
}

// Fit は訓練データから各列の平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	s.Reset()
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Offset = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)

		if s.WithMean {
			s.Offset[j] = mean
		}
		s.Scale[j] = 1
		// 標準偏差が0に近い場合は1のまま（ゼロ除算を避ける）
		if s.WithStd && math.Abs(std) >= constantThreshold {
			s.Scale[j] = std
		}
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("StandardScaler", "Transform", X, false)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("StandardScaler", "InverseTransform", X, true)
}

// Clone は同じ設定を持つ未学習のStandardScalerを返す
func (s *StandardScaler) Clone() Scaler {
	return NewStandardScaler(s.WithMean, s.WithStd)
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
}

// MinMaxScaler はデータを FeatureRange（デフォルト[0,1]）に線形に写す
type MinMaxScaler struct {
	affine

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する。
// featureRange[0] < featureRange[1] でなければならない。
func NewMinMaxScaler(featureRange [2]float64) (*MinMaxScaler, error) {
	if !(featureRange[0] < featureRange[1]) {
		return nil, errors.NewValidationError("feature_range", "min must be less than max", featureRange)
	}
	return &MinMaxScaler{FeatureRange: featureRange}, nil
}

// NewMinMaxScalerDefault は[0,1]範囲のMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: [2]float64{0, 1}}
}

// Fit は訓練データから各列の最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	m.Reset()
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	m.Offset = make([]float64, c)
	m.Scale = make([]float64, c)
	width := m.FeatureRange[1] - m.FeatureRange[0]
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		lo, hi := floats.Min(col), floats.Max(col)

		// x' = (x - lo)/(hi - lo)·width + fmin = (x - Offset)/Scale
		dataRange := hi - lo
		if math.Abs(dataRange) < constantThreshold {
			// 定数特徴量は下端に写す
			dataRange = width
		}
		m.Scale[j] = dataRange / width
		m.Offset[j] = lo - m.FeatureRange[0]*m.Scale[j]
	}

	m.SetFitted()
	return nil
}

// Transform は学習済みの範囲を使ってデータをスケーリングする
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return m.apply("MinMaxScaler", "Transform", X, false)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return m.apply("MinMaxScaler", "InverseTransform", X, true)
}

// Clone は同じ設定を持つ未学習のMinMaxScalerを返す
func (m *MinMaxScaler) Clone() Scaler {
	return &MinMaxScaler{FeatureRange: m.FeatureRange}
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

func (m *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(feature_range=[%g, %g])", m.FeatureRange[0], m.FeatureRange[1])
}

// ParseScaler は "none", "minmax", "standard" からスケーラーを作成する。
// "none"（および空文字列）の場合は nil を返す。
func ParseScaler(name string) (Scaler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "minmax":
		return NewMinMaxScalerDefault(), nil
	case "standard":
		return NewStandardScaler(true, true), nil
	default:
		return nil, errors.NewValidationError("scale", "must be none, minmax or standard", name)
	}
}
