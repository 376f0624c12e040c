package types

import (
	"fmt"

	reflect "github.com/goccy/go-reflect"
)

// VariadicArguments is the ArgumentCount of a function accepting any number of arguments.
const VariadicArguments = -1

type FunctionInfo struct {
	Name          string `json:"name" mapstructure:"name"`
	ArgumentCount int    `json:"argument_count" mapstructure:"argument_count"`
}

func (f FunctionInfo) IsVariadic() bool {
	return f.ArgumentCount == VariadicArguments
}

func (f FunctionInfo) String() string {
	if f.IsVariadic() {
		return f.Name + "(...)"
	}
	return fmt.Sprintf("%s/%d", f.Name, f.ArgumentCount)
}

var errorInterfaceType = reflect.TypeOf((*error)(nil)).Elem()

// NewFunctionInfo describes f, which must be a function over float64 values
// returning a float64 and optionally an error.
func NewFunctionInfo(name string, f any) (FunctionInfo, error) {
	if name == "" {
		return FunctionInfo{}, &Error{
			Tag: CatalogErrorTag,
			Err: fmt.Errorf("function name must not be empty: %+v", f),
		}
	}

	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func {
		return FunctionInfo{}, &Error{
			Tag: CatalogErrorTag,
			Err: fmt.Errorf("%s: must be function but got %T", name, f),
		}
	}

	t := v.Type()
	switch t.NumOut() {
	case 1:
		// ok
	case 2:
		if lastOut := t.Out(1); !lastOut.Implements(errorInterfaceType) {
			return FunctionInfo{}, &Error{
				Tag: CatalogErrorTag,
				Err: fmt.Errorf("%s: last return value type must be error: %s", name, lastOut.String()),
			}
		}
	default:
		return FunctionInfo{}, &Error{
			Tag: CatalogErrorTag,
			Err: fmt.Errorf("%s: function must return 1 or 2 values but returns %d", name, t.NumOut()),
		}
	}
	if out := t.Out(0); out.Kind() != reflect.Float64 {
		return FunctionInfo{}, &Error{
			Tag: CatalogErrorTag,
			Err: fmt.Errorf("%s: first return value type must be float64: %s", name, out.String()),
		}
	}

	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			in = in.Elem()
		}
		if in.Kind() != reflect.Float64 {
			return FunctionInfo{}, &Error{
				Tag: CatalogErrorTag,
				Err: fmt.Errorf("%s: argument[%d] must be float64 but got %s", name, i, in.String()),
			}
		}
	}

	if t.IsVariadic() {
		return FunctionInfo{Name: name, ArgumentCount: VariadicArguments}, nil
	}
	return FunctionInfo{Name: name, ArgumentCount: t.NumIn()}, nil
}

func MustNewFunctionInfo(name string, f any) FunctionInfo {
	info, err := NewFunctionInfo(name, f)
	if err != nil {
		panic(err)
	}
	return info
}
