package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/radin/cx/lexer"
)

var log = commonlog.GetLogger("radin.project")

// Options selects the files that belong to a project.
type Options struct {
	Extensions []string
	// Exclude holds filepath.Match patterns, tested against the path relative to the
	// project root and against the base name.
	Exclude []string
}

var DefaultOptions = Options{
	Extensions: []string{".h", ".cx"},
}

// Project is a set of source files rooted at a directory.
type Project struct {
	RootDir string
	Options Options
	Files   []*File
}

// File is a source file of the project.
type File struct {
	Path string
	Rel  string
	// Includes lists the quoted #include targets, as written.
	Includes []string
}

// Load collects the source files below each path. Paths naming a file are taken as
// they are, whatever their extension. The first path is the project root.
func Load(opts Options, paths ...string) (*Project, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	root := paths[0]
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	p := &Project{RootDir: root, Options: opts}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if !info.IsDir() {
			if err := p.add(path); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.scan(path); err != nil {
			return nil, err
		}
	}
	log.Debugf("loaded %d files from %s", len(p.Files), p.RootDir)
	return p, nil
}

// LoadFrom scans a single directory.
func LoadFrom(rootDir string, opts Options) (*Project, error) {
	return Load(opts, rootDir)
}

func (p *Project) scan(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !p.Matches(path) {
			return nil
		}
		return p.add(path)
	})
	if err != nil {
		return fmt.Errorf("scan source files in %s: %w", dir, err)
	}
	return nil
}

// Matches reports whether path has a source extension and is not excluded.
func (p *Project) Matches(path string) bool {
	if !slices.Contains(p.Options.Extensions, filepath.Ext(path)) {
		return false
	}
	rel := p.rel(path)
	for _, pattern := range p.Options.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return false
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return false
		}
	}
	return true
}

func (p *Project) rel(path string) string {
	rel, err := filepath.Rel(p.RootDir, path)
	if err != nil {
		return path
	}
	return rel
}

// add reads path's include directives and registers it. Known files are refreshed.
func (p *Project) add(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	f := &File{Path: path, Rel: p.rel(path), Includes: includes(data, path)}
	for i, known := range p.Files {
		if known.Path == path {
			p.Files[i] = f
			return nil
		}
	}
	p.Files = append(p.Files, f)
	return nil
}

func (p *Project) remove(path string) {
	p.Files = slices.DeleteFunc(p.Files, func(f *File) bool {
		return f.Path == path
	})
}

// File returns the file with the given path, or nil if not found.
func (p *Project) File(path string) *File {
	for _, f := range p.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// includes extracts the quoted targets of #include directives. Angle-bracket includes
// name system headers outside the project and are skipped.
func includes(data []byte, file string) []string {
	var out []string
	l := lexer.NewLexer(data, file)
	for {
		tok := l.NextToken()
		if tok.Kind == lexer.TokenEOF {
			return out
		}
		if tok.Kind != lexer.TokenDirective {
			continue
		}
		line := strings.TrimSpace(strings.TrimPrefix(tok.Literal, "#"))
		if !strings.HasPrefix(line, "include") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "include"))
		if len(line) < 2 || line[0] != '"' {
			continue
		}
		if end := strings.IndexByte(line[1:], '"'); end >= 0 {
			out = append(out, line[1:end+1])
		}
	}
}

// resolve finds the project file an include of from refers to: first relative to
// the including file, then relative to the root, then by base name.
func (p *Project) resolve(from *File, target string) *File {
	candidates := []string{
		filepath.Join(filepath.Dir(from.Path), target),
		filepath.Join(p.RootDir, target),
	}
	for _, c := range candidates {
		if f := p.File(c); f != nil {
			return f
		}
	}
	for _, f := range p.Files {
		if filepath.Base(f.Path) == filepath.Base(target) {
			return f
		}
	}
	return nil
}

// FilesInOrder returns files sorted so that every file comes after the files it
// includes. Files with no includes keep their discovery order. On a cycle the
// discovery order is returned unchanged.
func (p *Project) FilesInOrder() []*File {
	deps := make(map[*File][]*File)
	inDegree := make(map[*File]int)
	for _, f := range p.Files {
		inDegree[f] = 0
	}
	for _, f := range p.Files {
		for _, target := range f.Includes {
			dep := p.resolve(f, target)
			if dep == nil || dep == f {
				continue
			}
			deps[dep] = append(deps[dep], f)
			inDegree[f]++
		}
	}

	var queue []*File
	for _, f := range p.Files {
		if inDegree[f] == 0 {
			queue = append(queue, f)
		}
	}

	var result []*File
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		result = append(result, f)

		for _, dependent := range deps[f] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(p.Files) {
		log.Warningf("include cycle in %s, parsing in discovery order", p.RootDir)
		return p.Files
	}
	return result
}
