// Package main provides a generator that extracts CLI, configuration and
// lint rule metadata from pinelint and writes markdown documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/configuration
//	go run ./scripts/gendocs -gen=rules -outdir=docs/rules
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, rules, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps a -gen value to its generator and default output directory.
var generators = []struct {
	name   string
	subdir string
	run    func(outDir string) error
}{
	{name: "cli", subdir: "cli", run: generateCLIDocs},
	{name: "config", subdir: "configuration", run: generateConfigDocs},
	{name: "rules", subdir: "rules", run: generateLintDocs},
}

func main() {
	flag.Parse()

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	if err := generate(*genFlag, *outDirFlag, filepath.Join(projectRoot, "docs")); err != nil {
		log.Fatal(err)
	}

	log.Println("Done!")
}

// generate runs the selected generator, or all of them. outDir overrides
// the per-generator directory under docsRoot and is ignored for "all".
func generate(gen, outDir, docsRoot string) error {
	found := false
	for _, g := range generators {
		if gen != "all" && gen != g.name {
			continue
		}
		found = true

		dir := filepath.Join(docsRoot, g.subdir)
		if outDir != "" && gen != "all" {
			dir = outDir
		}
		if err := g.run(dir); err != nil {
			return fmt.Errorf("failed to generate %s docs: %w", g.name, err)
		}
	}
	if !found {
		return fmt.Errorf("unknown -gen value: %s (use: cli, config, rules, all)", gen)
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
