package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/karupanerura/go-mathparser/internal/types"
	"github.com/mitchellh/mapstructure"
)

type catalogDef struct {
	Functions []any `json:"functions"`
}

func ParseFunctionsYAML(r io.Reader) ([]types.FunctionInfo, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseFunctionsJSON(bytes.NewReader(jsonBytes))
}

func ParseFunctionsJSON(r io.Reader) ([]types.FunctionInfo, error) {
	var def catalogDef
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	infos := make([]types.FunctionInfo, len(def.Functions))
	for i, v := range def.Functions {
		if err := decodeFunctionInfo(v, &infos[i]); err != nil {
			return nil, fmt.Errorf("functions[%d]: %w", i, err)
		}
	}
	return infos, nil
}

// decodeFunctionInfo accepts either a bare name or a {name, argument_count} map.
func decodeFunctionInfo(v any, info *types.FunctionInfo) error {
	switch vv := v.(type) {
	case string:
		*info = types.FunctionInfo{Name: vv, ArgumentCount: types.VariadicArguments}
		return nil

	case map[string]any:
		info.ArgumentCount = types.VariadicArguments
		var md mapstructure.Metadata
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Metadata: &md,
			Result:   info,
		})
		if err != nil {
			return fmt.Errorf("mapstructure.NewDecoder: %w", err)
		}
		if err := decoder.Decode(vv); err != nil {
			return &types.Error{Tag: types.CatalogErrorTag, Err: err}
		}
		if len(md.Unused) != 0 {
			return &types.Error{
				Tag: types.CatalogErrorTag,
				Err: fmt.Errorf("unknown keys: %v", md.Unused),
			}
		}
		return nil

	default:
		return &types.Error{
			Tag: types.CatalogErrorTag,
			Err: fmt.Errorf("function must be a name or a map but got %T: %+v", v, v),
		}
	}
}

// FileLoader reads the catalog file on every LoadFunctions call.
func FileLoader(filePath string) FunctionLoader {
	return LoaderFunc(func() ([]types.FunctionInfo, error) {
		var parseFunctions func(io.Reader) ([]types.FunctionInfo, error)
		switch filepath.Ext(filePath) {
		case ".json":
			parseFunctions = ParseFunctionsJSON
		case ".yaml", ".yml":
			parseFunctions = ParseFunctionsYAML
		default:
			return nil, fmt.Errorf("unsupported file extension: %s", filePath)
		}

		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
		}
		defer f.Close()

		infos, err := parseFunctions(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		return infos, nil
	})
}
