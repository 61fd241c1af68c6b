package lib

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gingerrexayers/dirdigest-go/internal/dirdigest/types"
)

// ChunkSize is the number of bytes read from a file per Update call.
const ChunkSize = 1024

// CollectFiles walks the tree rooted at rootDir and returns the paths of all
// regular files, sorted byte-wise by their full path.
//
// Entries that cannot be read, the root included, are skipped and the walk
// carries on. Symbolic links are never followed, except when rootDir itself is
// one. A nil matcher keeps every file.
func CollectFiles(rootDir string, matcher *IgnoreMatcher, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if info, err := os.Lstat(rootDir); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(rootDir); err == nil {
			rootDir = resolved
		}
	}

	var files []string
	// The callback never returns an error, so neither does WalkDir.
	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		if path != rootDir && matcher.Ignored(relativeTo(rootDir, path), d.IsDir()) {
			logger.Debug("ignoring path", "path", path)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files
}

// StreamFile feeds the contents of filePath into digest in chunks of
// chunkSize bytes, in file order. It returns the number of bytes fed.
//
// If the file cannot be opened nothing is fed. If a read fails part way,
// the chunks read before the failure stay in the digest and the rest of the
// file is dropped. Both cases return a *types.FileError.
func StreamFile(filePath string, digest DigestAlgorithm, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}

	file, err := os.Open(filePath)
	if err != nil {
		return 0, &types.FileError{Path: filePath, Op: types.OpOpen, Err: err}
	}
	defer file.Close()

	n, err := feed(file, digest, chunkSize)
	if err != nil {
		return n, &types.FileError{Path: filePath, Op: types.OpRead, Err: err}
	}
	return n, nil
}

// feed copies r into digest one chunk at a time until EOF or the first error.
func feed(r io.Reader, digest DigestAlgorithm, chunkSize int) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			digest.Update(buf[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func relativeTo(rootDir, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return path
	}
	return rel
}
