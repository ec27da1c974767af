package db

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// casefold(x) returns the Unicode case folding of x, the same folding as
// cases.Fold, so folded search text can be compared against casefold(column).
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefoldFunc)
}

func casefoldFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return nil, fmt.Errorf("casefold: unsupported argument type %T", v)
	}
}
