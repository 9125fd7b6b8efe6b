package bundle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/klauspost/compress/zip"
)

// DefaultFolder is the folder the artifacts live in, inside the archive and
// on disk.
const DefaultFolder = "config"

// ArchiveName is the file name of the zip bundle.
const ArchiveName = "config.zip"

// zipEpoch is the modification time stamped on archive entries so that the
// same files always produce the same archive.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	ErrNoFiles       = errors.New("no files to bundle")
	ErrDuplicateName = errors.New("duplicate file name")
)

// File is one artifact to package.
type File struct {
	Name string
	Data []byte
}

// Function variables for dependency injection in tests.
var (
	zipFiles   = Zip
	writeFile  = os.WriteFile
	mkdirAll   = os.MkdirAll
	fileMode   = os.FileMode(0600)
	folderMode = os.FileMode(0755)
)

// Zip returns a deflated archive holding files under folder.
func Zip(files []File, folder string) ([]byte, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, f.Name)
		}
		seen[f.Name] = true

		hdr := &zip.FileHeader{
			Name:     path.Join(folder, f.Name),
			Method:   zip.Deflate,
			Modified: zipEpoch,
		}
		hdr.SetMode(0644)

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFiles writes every file into dir, in order, and returns the written
// paths. It keeps going after a failure so that one bad file never costs
// the others, and reports all failures together.
func WriteFiles(dir string, files []File) ([]string, error) {
	if err := mkdirAll(dir, folderMode); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	var errs []error
	for _, f := range files {
		p := filepath.Join(dir, f.Name)
		if err := writeFile(p, f.Data, fileMode); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s: %w", p, err))
			continue
		}
		written = append(written, p)
	}
	return written, errors.Join(errs...)
}

// Publisher uploads a finished archive somewhere and returns its location.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) (string, error)
}

// Options controls Emit.
type Options struct {
	// Dir is the output directory.
	Dir string
	// Folder is the sub folder holding the artifacts. Defaults to DefaultFolder.
	Folder string
	// Zip requests a config.zip archive instead of loose files.
	Zip bool
	// Publisher, when set, receives the archive after it was written.
	Publisher Publisher
	Log       logr.Logger
}

// Result reports what Emit produced.
type Result struct {
	Archive   string
	Files     []string
	Fallback  bool
	Published string
}

// Emit writes files according to opts. When archiving fails the files are
// written individually instead and Result.Fallback is set.
func Emit(ctx context.Context, files []File, opts Options) (*Result, error) {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	folder := opts.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	res := &Result{}

	var publishErr error
	if opts.Zip || opts.Publisher != nil {
		archive, data, err := writeArchive(files, opts.Dir, folder)
		if err != nil {
			log.Info("archive unavailable, writing files individually", "error", err.Error())
			res.Fallback = true
		} else {
			res.Archive = archive
			log.V(1).Info("wrote archive", "path", archive, "files", len(files))

			if opts.Publisher != nil {
				loc, err := opts.Publisher.Publish(ctx, ArchiveName, data)
				if err != nil {
					publishErr = fmt.Errorf("failed to publish archive: %w", err)
				} else {
					res.Published = loc
					log.Info("published archive", "location", loc)
				}
			}
			if opts.Zip {
				return res, publishErr
			}
		}
	}

	written, err := WriteFiles(filepath.Join(opts.Dir, folder), files)
	res.Files = written
	if err == nil {
		log.V(1).Info("wrote files", "count", len(written))
	}
	return res, errors.Join(err, publishErr)
}

func writeArchive(files []File, dir, folder string) (string, []byte, error) {
	data, err := zipFiles(files, folder)
	if err != nil {
		return "", nil, err
	}
	if err := mkdirAll(dir, folderMode); err != nil {
		return "", nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	archive := filepath.Join(dir, ArchiveName)
	if err := writeFile(archive, data, fileMode); err != nil {
		return "", nil, fmt.Errorf("failed to write %s: %w", archive, err)
	}
	return archive, data, nil
}
