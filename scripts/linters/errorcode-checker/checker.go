package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// CodeInfo describes one errors.MustNewCode declaration.
type CodeInfo struct {
	Name    string // variable name
	Value   string // code string, e.g. "storage.not_found"
	Package string // directory relative to the checked root
	File    string
	Line    int
	Used    bool
}

// Violation is a forbidden pattern match.
type Violation struct {
	File    string
	Line    int
	Pattern string
	Text    string
}

// ErrorCodeChecker collects error code declarations and their uses
type ErrorCodeChecker struct {
	fileSet *token.FileSet
	root    string
	codes   map[string]*CodeInfo // key: package + "." + name
	uses    map[string]bool      // identifiers referenced outside declarations
	files   []string
	verbose bool
}

// NewErrorCodeChecker creates a new ErrorCodeChecker
func NewErrorCodeChecker(verbose bool) *ErrorCodeChecker {
	return &ErrorCodeChecker{
		fileSet: token.NewFileSet(),
		codes:   make(map[string]*CodeInfo),
		uses:    make(map[string]bool),
		verbose: verbose,
	}
}

func (c *ErrorCodeChecker) debug(format string, args ...any) {
	if c.verbose {
		fmt.Printf(format, args...)
	}
}

func excluded(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	for _, p := range patterns {
		if strings.Contains(slashed, p) {
			return true
		}
	}
	return false
}

// CheckDirectory parses every Go file under dir except excluded paths
func (c *ErrorCodeChecker) CheckDirectory(dir string, excludePaths []string) error {
	c.root = dir
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		if info.IsDir() {
			if rel != "." && excluded(rel+"/", excludePaths) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || excluded(rel, excludePaths) {
			return nil
		}
		return c.CheckFile(path)
	})
	if err != nil {
		return err
	}

	for key, info := range c.codes {
		info.Used = c.uses[key] || c.uses["."+info.Name]
	}
	return nil
}

func (c *ErrorCodeChecker) packageOf(path string) string {
	rel, err := filepath.Rel(c.root, filepath.Dir(path))
	if err != nil {
		return filepath.ToSlash(filepath.Dir(path))
	}
	return filepath.ToSlash(rel)
}

// CheckFile records the declarations and identifier uses of one file
func (c *ErrorCodeChecker) CheckFile(path string) error {
	file, err := parser.ParseFile(c.fileSet, path, nil, 0)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.files = append(c.files, path)
	pkg := c.packageOf(path)

	declared := make(map[*ast.Ident]bool)
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, name := range spec.Names {
			if i >= len(spec.Values) {
				continue
			}
			value, ok := mustNewCodeArg(spec.Values[i])
			if !ok {
				continue
			}
			declared[name] = true
			pos := c.fileSet.Position(name.Pos())
			c.codes[pkg+"."+name.Name] = &CodeInfo{
				Name:    name.Name,
				Value:   value,
				Package: pkg,
				File:    path,
				Line:    pos.Line,
			}
			c.debug("declared %s = %q at %s:%d\n", name.Name, value, path, pos.Line)
		}
		return true
	})

	ast.Inspect(file, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.SelectorExpr:
			// other packages refer to codes as pkg.Name; the package
			// qualifier is not resolved, so any selector counts
			c.uses["."+x.Sel.Name] = true
		case *ast.Ident:
			if !declared[x] {
				c.uses[pkg+"."+x.Name] = true
			}
		}
		return true
	})
	return nil
}

// mustNewCodeArg returns the literal passed to errors.MustNewCode.
func mustNewCodeArg(expr ast.Expr) (string, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return "", false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "MustNewCode" {
		return "", false
	}
	if ident, ok := sel.X.(*ast.Ident); !ok || ident.Name != "errors" {
		return "", false
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Codes returns every declaration, sorted by package then name
func (c *ErrorCodeChecker) Codes() []*CodeInfo {
	out := make([]*CodeInfo, 0, len(c.codes))
	for _, info := range c.codes {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Package != out[j].Package {
			return out[i].Package < out[j].Package
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Unused returns declarations never referenced
func (c *ErrorCodeChecker) Unused() []*CodeInfo {
	var out []*CodeInfo
	for _, info := range c.Codes() {
		if !info.Used {
			out = append(out, info)
		}
	}
	return out
}

// Duplicates maps a code string declared more than once to its declarations
func (c *ErrorCodeChecker) Duplicates() map[string][]*CodeInfo {
	byValue := make(map[string][]*CodeInfo)
	for _, info := range c.Codes() {
		byValue[info.Value] = append(byValue[info.Value], info)
	}
	for v, infos := range byValue {
		if len(infos) < 2 {
			delete(byValue, v)
		}
	}
	return byValue
}

// CheckForbiddenPatterns scans the parsed files outside allowed paths
func (c *ErrorCodeChecker) CheckForbiddenPatterns(patterns, allowedPaths []string) ([]Violation, error) {
	var regexps []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		regexps = append(regexps, re)
	}

	var violations []Violation
	for _, path := range c.files {
		rel, _ := filepath.Rel(c.root, path)
		if excluded(rel, allowedPaths) || strings.HasSuffix(path, "_test.go") {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		for i, line := range strings.Split(string(data), "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "//") {
				continue
			}
			for j, re := range regexps {
				if re.MatchString(line) {
					violations = append(violations, Violation{
						File:    path,
						Line:    i + 1,
						Pattern: patterns[j],
						Text:    trimmed,
					})
				}
			}
		}
	}
	return violations, nil
}
