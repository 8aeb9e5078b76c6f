package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/fileutil"
	"github.com/alnah/go-docmark/internal/hints"
	"github.com/alnah/go-docmark/internal/logfields"
	"github.com/alnah/go-docmark/internal/pipeline"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// BuildResult holds the outcome of a single page build.
type BuildResult struct {
	InputPath  string
	OutputPath string
	Warnings   []string
	Err        error
	Duration   time.Duration
}

// buildBatch builds files concurrently with n workers. A render failure
// cancels the files not yet started; they report context.Canceled.
func buildBatch(ctx context.Context, sess *session, files []FileToBuild, n int) []BuildResult {
	if len(files) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	concurrency := n
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = buildFile(sess, files[idx])
				if isRenderError(results[idx].Err) {
					cancel()
				}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildFile processes a single file and returns the result.
func buildFile(sess *session, f FileToBuild) BuildResult {
	start := time.Now()
	result := BuildResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) BuildResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadSource, err))
	}

	text := pipeline.NormalizeLineEndings(string(content))
	doc := docmark.Sectionize(text)

	body, err := sess.proc.Process(text, docmark.Item{
		Kind:       docmark.KindFile,
		SourceName: f.InputPath,
		Line:       1,
		Document:   doc,
		Sink: docmark.WarnFunc(func(msg string) {
			result.Warnings = append(result.Warnings, msg)
		}),
	})
	if err != nil {
		return fail(err)
	}

	body, err = sess.links.Rewrite(body)
	if err != nil {
		return fail(fmt.Errorf("%s: %w", f.InputPath, err))
	}

	title, heading := doc.DisplayName, ""
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(f.InputPath), filepath.Ext(f.InputPath))
		heading = title
	}

	page, err := sess.page.Execute(pipeline.PageData{
		Title:   title,
		Heading: heading,
		Body:    body,
		CSS:     sess.css,
		Updated: sess.updated,
	})
	if err != nil {
		return fail(fmt.Errorf("%s: %w", f.InputPath, err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(page), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWritePage, err))
	}

	sess.logger.Debug("page written",
		logfields.Source(f.InputPath),
		logfields.Output(f.OutputPath),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	result.Duration = time.Since(start)
	return result
}

func isRenderError(err error) bool {
	return errors.Is(err, docmark.ErrRender) || errors.Is(err, pipeline.ErrPageRender)
}

// ResultSummary holds the count of succeeded and failed builds and warnings.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
}

// countResults tallies succeeded and failed builds.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		summary.Warnings += len(r.Warnings)
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results and returns their summary.
// Warnings go to stderr unless quiet.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if !quiet {
			for _, w := range r.Warnings {
				fmt.Fprintf(env.Stderr, "warning: %s\n", w)
			}
		}

		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed, %d warning(s)\n", summary.Succeeded, summary.Failed, summary.Warnings)
	}

	return summary
}
