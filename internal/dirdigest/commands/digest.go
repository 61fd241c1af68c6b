// Package commands contains the command-level operations of the dirdigest application.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/lib"
	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/types"
)

// DigestOptions configures a single digest run.
type DigestOptions struct {
	// Root is the directory (or single file) to fingerprint.
	Root string
	// Algorithm defaults to lib.DefaultAlgorithm when empty.
	Algorithm lib.Algorithm
	// IgnoreFile optionally names a file of gitignore-style patterns.
	IgnoreFile string
	// ChunkSize defaults to lib.ChunkSize when zero.
	ChunkSize int

	// Stdout receives the digest line. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives one line per skipped file. Defaults to os.Stderr.
	Stderr io.Writer
	// Progress receives pipeline events. Defaults to types.NopSink.
	Progress types.ProgressSink
	Logger   *slog.Logger
}

// Result describes the outcome of a digest run.
type Result struct {
	Digest    string
	Algorithm lib.Algorithm
	// Files is the number of regular files found, including those that failed.
	Files  int
	Bytes  int64
	Errors []types.FileError
}

// Digest computes one digest over the concatenated contents of every regular
// file under opts.Root, in sorted path order, and prints it to opts.Stdout.
//
// Files that cannot be opened or read are reported on opts.Stderr and skipped;
// they never fail the run. An inaccessible root yields the digest of no bytes.
// Errors are only returned for invalid options, in which case nothing is
// printed to opts.Stdout.
func Digest(opts DigestOptions) (Result, error) {
	opts = withDefaults(opts)

	digest, err := lib.NewDigest(opts.Algorithm)
	if err != nil {
		return Result{}, err
	}

	if opts.Root == "" {
		return Result{}, errors.New("no path given")
	}

	var matcher *lib.IgnoreMatcher
	if opts.IgnoreFile != "" {
		matcher, err = lib.LoadIgnoreFile(opts.IgnoreFile)
		if err != nil {
			return Result{}, err
		}
	}

	// 1. Collect and order the files.
	opts.Progress.OnEvent(types.Event{Kind: types.EventScanStart, Path: opts.Root})
	opts.Logger.Debug("reading file tree", "root", opts.Root)

	files := lib.CollectFiles(opts.Root, matcher, opts.Logger)

	opts.Progress.OnEvent(types.Event{Kind: types.EventScanDone, Total: len(files)})
	opts.Logger.Debug("found files", "count", len(files))

	// 2. Stream every file into the single run-wide digest.
	result := Result{Algorithm: opts.Algorithm, Files: len(files)}
	for i, file := range files {
		opts.Progress.OnEvent(types.Event{Kind: types.EventFileStart, Path: file, Index: i, Total: len(files)})

		n, err := lib.StreamFile(file, digest, opts.ChunkSize)
		result.Bytes += n
		if err != nil {
			var fileErr *types.FileError
			if !errors.As(err, &fileErr) {
				fileErr = &types.FileError{Path: file, Op: types.OpRead, Err: err}
			}
			result.Errors = append(result.Errors, *fileErr)
			fmt.Fprintln(opts.Stderr, fileErr.Error())
			opts.Progress.OnEvent(types.Event{Kind: types.EventFileError, Path: file, Index: i, Total: len(files), Err: fileErr})
		}
		opts.Logger.Debug("hashed file", "path", file, "bytes", n)

		opts.Progress.OnEvent(types.Event{Kind: types.EventFileDone, Path: file, Index: i, Total: len(files)})
	}

	// 3. Finalize once and print.
	result.Digest = digest.Finalize()
	opts.Progress.OnEvent(types.Event{Kind: types.EventFinish, Total: len(files)})
	opts.Logger.Debug("digest complete", "algorithm", opts.Algorithm, "files", result.Files, "bytes", result.Bytes, "errors", len(result.Errors), "digest", result.Digest)

	fmt.Fprintln(opts.Stdout, result.Digest)
	return result, nil
}

func withDefaults(opts DigestOptions) DigestOptions {
	if opts.Algorithm == "" {
		opts.Algorithm = lib.DefaultAlgorithm
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = lib.ChunkSize
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Progress == nil {
		opts.Progress = types.NopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}
