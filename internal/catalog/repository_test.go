package catalog_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/go-mathparser/internal/catalog"
	"github.com/karupanerura/go-mathparser/internal/expression"
	"github.com/karupanerura/go-mathparser/internal/types"
)

var expectedFileFunctions = []types.FunctionInfo{
	{Name: "hypot", ArgumentCount: 2},
	{Name: "clamp", ArgumentCount: 3},
	{Name: "sum", ArgumentCount: types.VariadicArguments},
	{Name: "avg", ArgumentCount: types.VariadicArguments},
}

func TestFunctionRepository(t *testing.T) {
	t.Parallel()

	repo, err := catalog.NewFunctionRepository(catalog.Static(
		types.FunctionInfo{Name: "sin", ArgumentCount: 1},
		types.FunctionInfo{Name: "pow", ArgumentCount: 2},
		types.FunctionInfo{Name: "max", ArgumentCount: types.VariadicArguments},
	))
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		name     string
		expected bool
	}{
		{name: "sin", expected: true},
		{name: "pow", expected: true},
		{name: "max", expected: true},
		{name: "Sin", expected: false},
		{name: "cos", expected: false},
		{name: "", expected: false},
	} {
		if got := repo.Contains(tt.name); got != tt.expected {
			t.Errorf("Contains(%q): expect %v but got %v", tt.name, tt.expected, got)
		}
	}

	if info, ok := repo.Lookup("pow"); !ok || info.ArgumentCount != 2 {
		t.Errorf("unexpected lookup result: %v, %v", info, ok)
	}
	if diff := cmp.Diff([]string{"max", "pow", "sin"}, functionNames(repo.Functions())); diff != "" {
		t.Errorf("unexpected functions (-want +got):\n%s", diff)
	}
	if repo.Len() != 3 {
		t.Errorf("expect 3 functions but got %d", repo.Len())
	}
}

func TestFunctionRepositoryIsCatalog(t *testing.T) {
	t.Parallel()

	repo := catalog.MustNewFunctionRepository(catalog.Static(types.FunctionInfo{Name: "sqrt", ArgumentCount: 1}))
	expr, err := expression.ParseExpr("sqrt(x) + y(1)", repo)
	if err != nil {
		t.Fatal(err)
	}
	if got := expr.String(); got != "x sqrt y 1 +" {
		t.Errorf("expect to %q but got %q", "x sqrt y 1 +", got)
	}
}

func TestNewFunctionRepositoryErrors(t *testing.T) {
	t.Parallel()

	broken := errors.New("broken loader")
	for _, tt := range []struct {
		name   string
		loader catalog.FunctionLoader
		target error
	}{
		{name: "nil loader", loader: nil, target: types.ErrInvalidInput},
		{name: "empty name", loader: catalog.Static(types.FunctionInfo{ArgumentCount: 1}), target: types.ErrCatalog},
		{name: "invalid argument count", loader: catalog.Static(types.FunctionInfo{Name: "f", ArgumentCount: -2}), target: types.ErrCatalog},
		{
			name: "duplicated name",
			loader: catalog.Merge(
				catalog.Static(types.FunctionInfo{Name: "f", ArgumentCount: 1}),
				catalog.Static(types.FunctionInfo{Name: "f", ArgumentCount: 2}),
			),
			target: types.ErrCatalog,
		},
		{
			name: "loader failure",
			loader: catalog.LoaderFunc(func() ([]types.FunctionInfo, error) {
				return nil, broken
			}),
			target: broken,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.NewFunctionRepository(tt.loader)
			if !errors.Is(err, tt.target) {
				t.Errorf("expect %v but got %v", tt.target, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	repo, err := catalog.NewFunctionRepository(catalog.Merge(
		catalog.Static(types.FunctionInfo{Name: "sin", ArgumentCount: 1}),
		catalog.FileLoader(filepath.Join("testdata", "functions.yaml")),
	))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"avg", "clamp", "hypot", "sin", "sum"}, functionNames(repo.Functions())); diff != "" {
		t.Errorf("unexpected functions (-want +got):\n%s", diff)
	}
}

func TestFileLoader(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		file      string
		expected  []types.FunctionInfo
		errSubstr string
	}{
		{file: "functions.yaml", expected: expectedFileFunctions},
		{file: "functions.json", expected: expectedFileFunctions},
		{file: "unknown_key.yaml", errSubstr: "unknown keys"},
		{file: "functions.toml", errSubstr: "unsupported file extension"},
		{file: "missing.json", errSubstr: "os.Open"},
	} {
		tt := tt
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			infos, err := catalog.FileLoader(filepath.Join("testdata", tt.file)).LoadFunctions()
			if tt.errSubstr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errSubstr) {
					t.Fatalf("expect error containing %q but got %v", tt.errSubstr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.expected, infos); diff != "" {
				t.Errorf("unexpected functions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileLoaderDuplicated(t *testing.T) {
	t.Parallel()

	_, err := catalog.NewFunctionRepository(catalog.FileLoader(filepath.Join("testdata", "duplicated.json")))
	if !errors.Is(err, types.ErrCatalog) {
		t.Errorf("expect CatalogError but got %v", err)
	}
}

func TestParseFunctionsJSONRejectsInvalidEntry(t *testing.T) {
	t.Parallel()

	_, err := catalog.ParseFunctionsJSON(strings.NewReader(`{"functions": [1]}`))
	if !errors.Is(err, types.ErrCatalog) {
		t.Errorf("expect CatalogError but got %v", err)
	}
}

func functionNames(infos []types.FunctionInfo) []string {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}
