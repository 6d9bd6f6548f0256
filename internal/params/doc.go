// Package params converts command-line query arguments into typed values
// for positional binding.
//
// Each argument is inspected on its own:
//   - NULL (any case) binds as SQL NULL
//   - integers bind as int64
//   - other numbers bind as float64
//   - a value wrapped in single or double quotes binds as the text inside,
//     so '9' stays a string
//   - anything else binds as text
//
// # Example Usage
//
//	args, err := params.ParseArgs([]string{"9", "'W%'", "null"})
//	// args: []any{int64(9), "W%", nil}
package params
