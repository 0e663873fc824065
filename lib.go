package minexp

import (
	"fmt"
	"net/http"
	"path"
	"sort"

	_ "github.com/mattn/minexp/statik"
	"github.com/rakyll/statik/fs"
)

//go:generate statik -src=lib -f

// LibFiles returns the names of the bundled library files, sorted.
func LibFiles() ([]string, error) {
	statikFS, err := fs.New()
	if err != nil {
		return nil, err
	}
	return libFiles(statikFS)
}

func libFiles(statikFS http.FileSystem) ([]string, error) {
	dir, err := statikFS.Open("/")
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	fis, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, fi := range fis {
		if fi.IsDir() {
			continue
		}
		names = append(names, path.Base(fi.Name()))
	}
	sort.Strings(names)
	return names, nil
}

// LoadLib defines the bundled library functions in env.
func LoadLib(env *Env) error {
	statikFS, err := fs.New()
	if err != nil {
		return err
	}
	names, err := libFiles(statikFS)
	if err != nil {
		return err
	}

	for _, name := range names {
		f, err := statikFS.Open(path.Join("/", name))
		if err != nil {
			return err
		}
		nodes, err := NewParser(f).ParseAll()
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := env.EvalAll(nodes); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
