package template

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/KwakOri/Temis-sub000/internal/domain"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// Builtins compiles the templates shipped with the binary, sorted by ID.
func Builtins(fallbackMax int) ([]*Compiled, error) {
	names, err := fs.Glob(builtinFS, "builtin/*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]*Compiled, 0, len(names))
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path.Base(name), err)
		}
		ts, err := ParseSchema(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		c, err := Compile(ts, fallbackMax)
		if err != nil {
			return nil, err
		}
		c.Source = domain.SourceBuiltin
		out = append(out, c)
	}
	return out, nil
}
