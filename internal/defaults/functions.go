package defaults

import (
	"github.com/karupanerura/go-mathparser/internal/catalog"
	"github.com/karupanerura/go-mathparser/internal/types"
)

// Functions loads the builtin functions.
var Functions catalog.FunctionLoader = catalog.LoaderFunc(func() ([]types.FunctionInfo, error) {
	return append([]types.FunctionInfo(nil), Math...), nil
})

var DefaultFunctionRepository = catalog.MustNewFunctionRepository(Functions)
