package catalog

import (
	"fmt"
	"sort"

	"github.com/karupanerura/go-mathparser/internal/expression"
	"github.com/karupanerura/go-mathparser/internal/types"
	"github.com/samber/lo"
)

type FunctionLoader interface {
	LoadFunctions() ([]types.FunctionInfo, error)
}

type LoaderFunc func() ([]types.FunctionInfo, error)

func (f LoaderFunc) LoadFunctions() ([]types.FunctionInfo, error) {
	return f()
}

// Static serves a fixed list of functions.
func Static(infos ...types.FunctionInfo) FunctionLoader {
	return LoaderFunc(func() ([]types.FunctionInfo, error) {
		return infos, nil
	})
}

// Merge concatenates the functions of every loader in order.
func Merge(loaders ...FunctionLoader) FunctionLoader {
	return LoaderFunc(func() ([]types.FunctionInfo, error) {
		var infos []types.FunctionInfo
		for i, loader := range loaders {
			ii, err := loader.LoadFunctions()
			if err != nil {
				return nil, fmt.Errorf("loader[%d]: %w", i, err)
			}
			infos = append(infos, ii...)
		}
		return infos, nil
	})
}

// FunctionRepository answers whether a name is a known function. It never
// changes after construction.
type FunctionRepository struct {
	functions map[string]types.FunctionInfo
}

var _ expression.FunctionCatalog = (*FunctionRepository)(nil)

func NewFunctionRepository(loader FunctionLoader) (*FunctionRepository, error) {
	if loader == nil {
		return nil, types.NewInvalidInputError("function loader must not be nil")
	}

	infos, err := loader.LoadFunctions()
	if err != nil {
		return nil, fmt.Errorf("LoadFunctions: %w", err)
	}

	m := make(map[string]types.FunctionInfo, len(infos))
	for _, info := range infos {
		if info.Name == "" {
			return nil, &types.Error{
				Tag: types.CatalogErrorTag,
				Err: fmt.Errorf("function name must not be empty: %+v", info),
			}
		}
		if info.ArgumentCount < types.VariadicArguments {
			return nil, &types.Error{
				Tag: types.CatalogErrorTag,
				Err: fmt.Errorf("invalid argument count for function %s: %d", info.Name, info.ArgumentCount),
			}
		}
		if _, duplicated := m[info.Name]; duplicated {
			return nil, &types.Error{
				Tag: types.CatalogErrorTag,
				Err: fmt.Errorf("duplicated function name: %s", info.Name),
			}
		}
		m[info.Name] = info
	}
	return &FunctionRepository{functions: m}, nil
}

func MustNewFunctionRepository(loader FunctionLoader) *FunctionRepository {
	r, err := NewFunctionRepository(loader)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *FunctionRepository) Contains(name string) bool {
	_, ok := r.functions[name]
	return ok
}

func (r *FunctionRepository) IsKnownFunction(name string) bool {
	return r.Contains(name)
}

func (r *FunctionRepository) Lookup(name string) (types.FunctionInfo, bool) {
	info, ok := r.functions[name]
	return info, ok
}

// Functions returns every function sorted by name.
func (r *FunctionRepository) Functions() []types.FunctionInfo {
	infos := lo.Values(r.functions)
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

func (r *FunctionRepository) Len() int {
	return len(r.functions)
}
