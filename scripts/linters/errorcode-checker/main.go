// Command errorcode-checker reports unused or duplicated pkg/errors codes
// and error constructions that bypass them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
)

func main() {
	var (
		dir        = flag.String("dir", ".", "Directory to check")
		configPath = flag.String("config", "", "Path to configuration file")
	)
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	checker := NewErrorCodeChecker(config.Verbose)
	if err := checker.CheckDirectory(*dir, config.ExcludePaths); err != nil {
		log.Fatalf("Error checking directory: %v", err)
	}

	failed := false

	codes := checker.Codes()
	fmt.Printf("Checked %d error codes in %s\n", len(codes), *dir)

	if unused := checker.Unused(); len(unused) > 0 {
		fmt.Println("\nUnused error codes:")
		for _, info := range unused {
			fmt.Printf("  %s (%q) declared in %s:%d\n", info.Name, info.Value, info.File, info.Line)
		}
		failed = failed || config.ExitOnUnused
	}

	if dups := checker.Duplicates(); len(dups) > 0 {
		values := make([]string, 0, len(dups))
		for v := range dups {
			values = append(values, v)
		}
		sort.Strings(values)

		fmt.Println("\nDuplicated error codes:")
		for _, v := range values {
			for _, info := range dups[v] {
				fmt.Printf("  %q as %s in %s:%d\n", v, info.Name, info.File, info.Line)
			}
		}
		failed = true
	}

	if config.CheckForbidden {
		violations, err := checker.CheckForbiddenPatterns(config.ForbiddenPatterns, config.AllowedPaths)
		if err != nil {
			log.Fatalf("Error checking forbidden patterns: %v", err)
		}
		if len(violations) > 0 {
			fmt.Println("\nForbidden error patterns (use pkg/errors codes):")
			for _, v := range violations {
				fmt.Printf("  %s:%d %s\n", v.File, v.Line, v.Text)
			}
			failed = failed || config.ExitOnForbidden
		}
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("OK")
}
