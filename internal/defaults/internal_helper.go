package defaults

import (
	"fmt"

	"github.com/karupanerura/go-mathparser/internal/types"
)

func aggregateFunctions(infos ...types.FunctionInfo) []types.FunctionInfo {
	seen := make(map[string]bool, len(infos))
	for _, info := range infos {
		if seen[info.Name] {
			panic(fmt.Sprintf("duplicated function name: %s", info.Name))
		}
		seen[info.Name] = true
	}
	return infos
}
