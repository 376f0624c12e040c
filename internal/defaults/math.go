package defaults

import (
	"math"

	"github.com/karupanerura/go-mathparser/internal/types"
)

var Math = aggregateFunctions(
	types.MustNewFunctionInfo("abs", math.Abs),
	types.MustNewFunctionInfo("acos", math.Acos),
	types.MustNewFunctionInfo("asin", math.Asin),
	types.MustNewFunctionInfo("atan", math.Atan),
	types.MustNewFunctionInfo("atan2", math.Atan2),
	types.MustNewFunctionInfo("ceil", math.Ceil),
	types.MustNewFunctionInfo("cos", math.Cos),
	types.MustNewFunctionInfo("cosh", math.Cosh),
	types.MustNewFunctionInfo("exp", math.Exp),
	types.MustNewFunctionInfo("floor", math.Floor),
	types.MustNewFunctionInfo("ln", math.Log),
	types.MustNewFunctionInfo("log10", math.Log10),
	types.MustNewFunctionInfo("log2", math.Log2),
	types.MustNewFunctionInfo("max", maxOf),
	types.MustNewFunctionInfo("min", minOf),
	types.MustNewFunctionInfo("pow", math.Pow),
	types.MustNewFunctionInfo("round", math.Round),
	types.MustNewFunctionInfo("sin", math.Sin),
	types.MustNewFunctionInfo("sinh", math.Sinh),
	types.MustNewFunctionInfo("sqrt", math.Sqrt),
	types.MustNewFunctionInfo("tan", math.Tan),
	types.MustNewFunctionInfo("tanh", math.Tanh),
	types.MustNewFunctionInfo("trunc", math.Trunc),
)

func maxOf(x float64, rest ...float64) float64 {
	for _, y := range rest {
		x = math.Max(x, y)
	}
	return x
}

func minOf(x float64, rest ...float64) float64 {
	for _, y := range rest {
		x = math.Min(x, y)
	}
	return x
}
