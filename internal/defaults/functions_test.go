package defaults_test

import (
	"testing"

	"github.com/karupanerura/go-mathparser/internal/defaults"
	"github.com/karupanerura/go-mathparser/internal/expression"
	"github.com/karupanerura/go-mathparser/internal/types"
)

func TestDefaultFunctionRepository(t *testing.T) {
	t.Parallel()

	repo := defaults.DefaultFunctionRepository
	if repo.Len() != len(defaults.Math) {
		t.Errorf("expect %d functions but got %d", len(defaults.Math), repo.Len())
	}

	for _, tt := range []struct {
		name          string
		argumentCount int
	}{
		{name: "sin", argumentCount: 1},
		{name: "pow", argumentCount: 2},
		{name: "atan2", argumentCount: 2},
		{name: "max", argumentCount: types.VariadicArguments},
		{name: "min", argumentCount: types.VariadicArguments},
	} {
		info, ok := repo.Lookup(tt.name)
		if !ok {
			t.Errorf("%s is not a builtin function", tt.name)
			continue
		}
		if info.ArgumentCount != tt.argumentCount {
			t.Errorf("%s: expect %d arguments but got %d", tt.name, tt.argumentCount, info.ArgumentCount)
		}
	}
}

func TestFunctionsLoaderReturnsCopy(t *testing.T) {
	t.Parallel()

	infos, err := defaults.Functions.LoadFunctions()
	if err != nil {
		t.Fatal(err)
	}
	infos[0].Name = "overwritten"
	if defaults.Math[0].Name == "overwritten" {
		t.Error("builtin functions must not be shared with callers")
	}
}

func TestParseWithDefaults(t *testing.T) {
	t.Parallel()

	expr, err := expression.ParseExpr("sqrt(pow(x, 2) + pow(y, 2)) * max(a, b, c)", defaults.DefaultFunctionRepository)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := expr.String(), "x 2 pow y 2 pow + sqrt a b c max *"; got != want {
		t.Errorf("expect to %q but got %q", want, got)
	}
}
