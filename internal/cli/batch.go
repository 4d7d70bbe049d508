package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/pipeline"
)

// defaultBatchPattern selects diagram files when no pattern is given.
const defaultBatchPattern = "**/*.diagram"

type batchOpts struct {
	root    string
	exclude []string
	outDir  string
	ext     string
	workers int
	check   bool
}

// batchCommand creates the batch command, which derives equations for every
// diagram file matching a set of glob patterns.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{root: ".", ext: ".eq"}

	cmd := &cobra.Command{
		Use:   "batch [pattern...]",
		Short: "Derive equations for many diagram files at once",
		Long: `Batch walks a directory, selects files with ** glob patterns (default
"**/*.diagram") and writes the derived equations of each next to it, or under
--out-dir with the same relative path. Files are processed concurrently. All
failures are reported together at the end.`,
		Example: `  commute batch
  commute batch 'papers/**/*.diagram' --exclude '**/draft/**' --out-dir build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{defaultBatchPattern}
			}
			return c.runBatch(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", opts.root, "directory to search")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write results under this directory")
	cmd.Flags().StringVar(&opts.ext, "ext", opts.ext, "extension of the written equation files")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "number of concurrent workers (default: CPU count)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "also verify each round trip")

	return cmd
}

// matchFiles returns the slash-separated paths under root matching any of
// patterns and none of exclude, sorted.
func matchFiles(root string, patterns, exclude []string) ([]string, error) {
	for _, p := range append(append([]string(nil), patterns...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(exclude, rel) || !matchAny(patterns, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

type batchResult struct {
	file   string
	output string
	lines  int
	err    error
}

func (c *CLI) runBatch(ctx context.Context, patterns []string, opts batchOpts) error {
	files, err := matchFiles(opts.root, patterns, opts.exclude)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printWarning("No files match %s", strings.Join(patterns, ", "))
		return nil
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	workers := opts.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(files))

	jobs := make(chan string)
	results := make(chan batchResult, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				results <- c.batchOne(ctx, runner, file, opts)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var merr *multierror.Error
	done := 0
	for res := range results {
		if res.err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", res.file, res.err))
			printError("%s", res.file)
			continue
		}
		done++
		printSuccess("%s %s", res.file, StyleDim.Render(fmt.Sprintf("(%d equations)", res.lines)))
		printFile(res.output)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	printInfo("%d of %d files processed", done, len(files))
	return merr.ErrorOrNil()
}

// batchOne derives the equations of one file and writes them out.
func (c *CLI) batchOne(ctx context.Context, runner *pipeline.Runner, rel string, opts batchOpts) batchResult {
	res := batchResult{file: rel}
	src := filepath.Join(opts.root, filepath.FromSlash(rel))
	data, err := os.ReadFile(src)
	if err != nil {
		res.err = err
		return res
	}
	g, err := dsl.ParseDiagram(string(data))
	if err != nil {
		res.err = err
		return res
	}

	derived, err := runner.Derive(ctx, g, c.baseOptions())
	if err != nil {
		res.err = err
		return res
	}
	if opts.check {
		report, err := runner.Check(ctx, g, c.baseOptions())
		if err != nil {
			res.err = err
			return res
		}
		if !report.OK() {
			res.err = fmt.Errorf("round trip failed: %s", verdict(report))
			return res
		}
	}

	dst := strings.TrimSuffix(src, filepath.Ext(src)) + opts.ext
	if opts.outDir != "" {
		dst = filepath.Join(opts.outDir, strings.TrimSuffix(filepath.FromSlash(rel), filepath.Ext(rel))+opts.ext)
	}
	if err := writeOutput(dst, []byte(derived.String()), nil); err != nil {
		res.err = err
		return res
	}
	res.output = dst
	res.lines = len(derived.Equations)
	return res
}
