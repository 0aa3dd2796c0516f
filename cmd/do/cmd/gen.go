package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

const (
	cssInput  = "assets/css/input.css"
	cssOutput = "assets/css/output.css"
)

type generator struct {
	name  string
	bin   string
	args  []string
	fresh func() bool
}

func GenCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate templ components and the tailwind stylesheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "regenerate even when outputs are newer than inputs")

	return cmd
}

func runGen(force bool) error {
	if _, err := exec.LookPath("tailwindcss"); err != nil {
		fmt.Println("Missing binary: tailwindcss")
		fmt.Println("Install the standalone CLI: https://tailwindcss.com/blog/standalone-cli")
		return fmt.Errorf("tailwindcss not found")
	}

	generators := []generator{
		{
			name:  "templ",
			bin:   "go",
			args:  []string{"tool", "templ", "generate"},
			fresh: func() bool { return len(staleTemplFiles(".")) == 0 },
		},
		{
			name:  "tailwindcss",
			bin:   "tailwindcss",
			args:  []string{"-i", cssInput, "-o", cssOutput, "--minify"},
			fresh: func() bool { return isUpToDate(cssOutput, tailwindInputs()) },
		},
	}

	start := time.Now()
	var wg sync.WaitGroup
	errs := make([]error, len(generators))

	for i, g := range generators {
		if !force && g.fresh() {
			fmt.Printf("[%s] up to date\n", g.name)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			genStart := time.Now()
			c := exec.Command(g.bin, g.args...)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			if err := c.Run(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", g.name, err)
				return
			}
			fmt.Printf("[%s] done (%s)\n", g.name, time.Since(genStart).Round(time.Millisecond))
		}()
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// staleTemplFiles lists .templ sources under root whose _templ.go is
// missing or older than the source.
func staleTemplFiles(root string) []string {
	var stale []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && (d.Name() == "_examples" || d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) && path != root {
			return filepath.SkipDir
		}
		if d.IsDir() || !strings.HasSuffix(path, ".templ") {
			return nil
		}
		out := strings.TrimSuffix(path, ".templ") + "_templ.go"
		if !isUpToDate(out, []string{path}) {
			stale = append(stale, path)
		}
		return nil
	})
	return stale
}

// tailwindInputs are the files whose class names end up in the stylesheet.
func tailwindInputs() []string {
	inputs := []string{cssInput}
	_ = filepath.WalkDir("internal/ui", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".templ") || strings.HasSuffix(path, ".go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	js, _ := filepath.Glob("assets/js/*.js")
	return append(inputs, js...)
}

// isUpToDate reports whether output exists and is newer than every input.
// Missing inputs are ignored.
func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outInfo.ModTime()) {
			return false
		}
	}
	return true
}
