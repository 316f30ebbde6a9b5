package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	docx2md "github.com/alnah/go-docx2md"
	"github.com/alnah/go-docx2md/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadCSS       = errors.New("failed to read CSS file")
	ErrConverterInit = errors.New("failed to initialize converter")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input docx2md.Input) (*docx2md.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*docx2md.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
}

// BatchLogger is the subset of the structured logger the batch uses.
type BatchLogger interface {
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// conversionParams holds the per-run settings applied to every file.
type conversionParams struct {
	imageDir      string
	extractImages bool
	html          bool
	pdf           bool
	css           string
	page          *docx2md.PageSettings
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Images     int
	Report     docx2md.Report
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, log BatchLogger) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, log)
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

// convertFile loads, converts and writes a single file.
// With --pdf, images are written before conversion so the renderer can
// load them. Otherwise they are written only once conversion succeeded.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, log BatchLogger) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	src, err := docx2md.LoadFile(f.InputPath)
	if err != nil {
		return fail(err)
	}
	for _, w := range src.Warnings {
		log.Warn("source content skipped", "file", f.InputPath, "detail", w)
	}

	input := src.Input
	input.HTML = params.html
	input.PDF = params.pdf
	input.CSS = params.css
	input.Page = params.page

	writeImages := func() error {
		if !params.extractImages {
			return nil
		}
		written, err := docx2md.WriteImages(f.OutputDir, src.Stem, params.imageDir, input.Images)
		result.Images = len(written)
		return err
	}

	if params.pdf && params.extractImages {
		if err := writeImages(); err != nil {
			return fail(err)
		}
		input.ImageBaseDir = docx2md.OutputDir(f.OutputDir, src.Stem)
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}
	result.Report = res.Report

	if !params.pdf {
		if err := writeImages(); err != nil {
			return fail(err)
		}
	}

	written, err := docx2md.WriteDocument(f.OutputDir, src.Stem, res)
	if err != nil {
		return fail(err)
	}
	result.OutputPath = written.Markdown

	log.Info("file converted", "file", f.InputPath, "output", written.Dir, "images", result.Images)
	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the first failure in input order.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, r.InputPath))
			continue
		}

		rep := r.Report
		if rep.HasProblems() && !quiet {
			fmt.Fprintf(env.Stderr, "warning: %s: %d unresolved image(s), %d unused image(s), %d unknown link(s)%s\n",
				r.InputPath, len(rep.UnresolvedImages), len(rep.UnusedImages), len(rep.UnknownLinks),
				hints.ForUnresolved(len(rep.UnresolvedImages), len(rep.UnknownLinks)))
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			printReport(env, r)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// printReport writes the verbose per-file report.
func printReport(env *Environment, r ConversionResult) {
	rep := r.Report
	fmt.Fprintf(env.Stdout, "  headings %d, lists %d, tables %d, text lines %d\n",
		rep.Headings, rep.ListBlocks, rep.Tables, rep.TextLines)
	placeholders := rep.ResolvedImages + len(rep.UnresolvedImages)
	fmt.Fprintf(env.Stdout, "  images %d/%d resolved, %d written, links %d resolved\n",
		rep.ResolvedImages, placeholders, r.Images, rep.ResolvedLinks)
	if len(rep.UnresolvedImages) > 0 {
		fmt.Fprintf(env.Stdout, "  unresolved images: %v\n", rep.UnresolvedImages)
	}
	if len(rep.UnusedImages) > 0 {
		fmt.Fprintf(env.Stdout, "  unused images: %v\n", rep.UnusedImages)
	}
	if len(rep.UnknownLinks) > 0 {
		fmt.Fprintf(env.Stdout, "  unknown links: %v\n", rep.UnknownLinks)
	}
}
