package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	modulePath       = "electoral"
	contractsPath    = modulePath + "/contracts"
	reportingService = "election-reporting"
)

// storageDrivers may only appear under adapters/postgres.
var storageDrivers = []string{
	"gorm.io/",
	"github.com/jackc/pgx/",
}

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// source is one non-test Go file with the position it holds in the tree.
type source struct {
	path    string
	service string
	layer   string
	sub     string
	prefix  string
}

func main() {
	var violations []violation
	violations = append(violations, walk("contexts", checkContextImport)...)
	violations = append(violations, walk("cmd", checkCommandImport)...)
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

type importCheck func(src source, importPath string) []string

func walk(root string, check importCheck) []violation {
	var violations []violation
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		src := locate(filepath.ToSlash(path))
		violations = append(violations, checkFile(path, src, check)...)
		return nil
	})
	return violations
}

// locate splits contexts/<context>/<service>/<layer>/<sub>/... paths; files
// outside contexts only carry their path.
func locate(path string) source {
	src := source{path: path}
	parts := strings.Split(path, "/")
	if len(parts) < 4 || parts[0] != "contexts" {
		return src
	}
	src.service = parts[2]
	src.layer = parts[3]
	if len(parts) > 5 {
		src.sub = parts[4]
	}
	src.prefix = fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
	return src
}

func checkFile(path string, src source, check importCheck) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: src.path, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		for _, rule := range check(src, importPath) {
			violations = append(violations, violation{
				File:   src.path,
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
				Rule:   rule,
			})
		}
	}
	return violations
}

func checkContextImport(src source, importPath string) []string {
	if src.prefix == "" {
		return nil
	}
	var rules []string

	// The reporting context reads the authority only through its
	// ElectionSource port, wired in bootstrap.
	if strings.HasPrefix(importPath, modulePath+"/contexts/") && !hasPrefix(importPath, src.prefix) {
		rules = append(rules, "cross-module imports are forbidden")
	}
	if isInternal(importPath) && src.layer != "adapters" {
		rules = append(rules, src.layer+" must not import runtime infrastructure")
	}
	if isStorageDriver(importPath) && !(src.layer == "adapters" && src.sub == "postgres") {
		rules = append(rules, "storage drivers belong to adapters/postgres")
	}
	if src.service == reportingService && isThirdParty(importPath) {
		rules = append(rules, "reporting is computed from snapshots and takes no third-party dependencies")
	}

	switch src.layer {
	case "domain":
		rules = append(rules, allowlist(importPath, "domain",
			src.prefix+"/domain",
		)...)
	case "application":
		if strings.Contains(importPath, "/adapters/") {
			rules = append(rules, "application must not import adapters")
		}
		rules = append(rules, allowlist(importPath, "application",
			src.prefix+"/application",
			src.prefix+"/domain",
			src.prefix+"/ports",
			contractsPath,
		)...)
	case "ports":
		rules = append(rules, allowlist(importPath, "ports",
			src.prefix+"/domain",
			contractsPath,
		)...)
	case "transport":
		// Wire DTOs are shared with cmd/electionctl.
		rules = append(rules, allowlist(importPath, "transport")...)
	}
	return rules
}

// checkCommandImport keeps binaries on the composition root and wire DTOs.
func checkCommandImport(src source, importPath string) []string {
	if !strings.HasPrefix(importPath, modulePath+"/contexts/") {
		return nil
	}
	if strings.Contains(importPath, "/transport/http") {
		return nil
	}
	return []string{"cmd reaches contexts through bootstrap or transport DTOs only"}
}

func allowlist(importPath string, layer string, allowed ...string) []string {
	if isStdlib(importPath) || isAllowed(importPath, allowed) {
		return nil
	}
	return []string{layer + " import is outside explicit allowlist"}
}

func isAllowed(importPath string, allowed []string) bool {
	for _, prefix := range allowed {
		if hasPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func hasPrefix(importPath string, prefix string) bool {
	return importPath == prefix || strings.HasPrefix(importPath, prefix+"/")
}

func isInternal(importPath string) bool {
	return hasPrefix(importPath, modulePath+"/internal") || hasPrefix(importPath, modulePath+"/cmd")
}

func isStorageDriver(importPath string) bool {
	for _, prefix := range storageDrivers {
		if strings.HasPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func isThirdParty(importPath string) bool {
	return !isStdlib(importPath) && !hasPrefix(importPath, modulePath)
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first := strings.Split(importPath, "/")[0]
	return !strings.Contains(first, ".")
}
