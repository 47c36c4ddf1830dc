package launchcfg

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// defaultFilePerms are the permissions for rendered files when none were
	// given and no file exists at the destination yet.
	defaultFilePerms = 0644

	// defaultDirPerms are used for destination directories that get created.
	defaultDirPerms = 0755
)

var (
	// errNoParentDir is returned when the destination's parent directory is
	// missing and creating it is disabled.
	errNoParentDir = errors.New("parent directory is missing")

	// errMissingDest is returned when the destination is empty.
	errMissingDest = errors.New("missing destination")
)

// renameFile moves a staged file into place. Swapped out in tests.
var renameFile = os.Rename

// FileRenderer writes an artifact's contents to a file.
type FileRenderer struct {
	createDestDirs bool
	path           string
	perms          os.FileMode
	backup         BackupFunc
}

// FileRendererInput is the input structure for NewFileRenderer.
type FileRendererInput struct {
	// CreateDestDirs causes missing directories on path to be created
	CreateDestDirs bool
	// Path is the full file path to write to
	Path string
	// Perms sets the mode of the file
	Perms os.FileMode
	// Backup is called with Path before an existing file is replaced
	Backup BackupFunc
}

// NewFileRenderer returns a new FileRenderer.
func NewFileRenderer(i FileRendererInput) FileRenderer {
	backup := i.Backup
	if backup == nil {
		backup = func(string) {}
	}
	return FileRenderer{
		createDestDirs: i.CreateDestDirs,
		path:           i.Path,
		perms:          i.Perms,
		backup:         backup,
	}
}

// BackupFunc defines the function type passed in to make backups of
// previously rendered files, if desired.
type BackupFunc func(path string)

// RenderResult reports what a Render call did.
type RenderResult struct {
	// DidRender indicates the file was written. It is false on error and
	// when the file on disk already matches the new contents.
	DidRender bool

	// WouldRender indicates the file on disk is (or would be) up to date
	// with the new contents. It is false on error.
	WouldRender bool
}

// Render atomically writes contents to disk, returning whether the file
// needed writing and whether it was written.
func (r FileRenderer) Render(contents []byte) (RenderResult, error) {
	p, rr, err := r.stage(contents)
	if err != nil || p == nil {
		return rr, err
	}
	if err := p.commit(); err != nil {
		p.discard()
		return RenderResult{}, errors.Wrap(err, "failed writing file")
	}
	return rr, nil
}

// stagedWrite is new file contents sitting in a temporary file next to the
// destination, waiting to be renamed into place.
type stagedWrite struct {
	path   string
	tmp    string
	backup BackupFunc

	// existed and previous describe the destination before commit, for
	// revert.
	existed  bool
	previous []byte

	// createdDir is the topmost directory made for the destination, if any.
	createdDir string
}

// stage writes contents to a temporary file beside the destination. A nil
// stagedWrite with a nil error means the destination is already up to date.
func (r FileRenderer) stage(contents []byte) (*stagedWrite, RenderResult, error) {
	existing, err := os.ReadFile(r.path)
	fileExists := !os.IsNotExist(err)
	if err != nil && fileExists {
		return nil, RenderResult{}, errors.Wrap(err, "failed reading file")
	}

	if fileExists && bytes.Equal(existing, contents) {
		return nil, RenderResult{
			DidRender:   false,
			WouldRender: true,
		}, nil
	}

	tmp, created, err := writeTemp(r.path, contents, r.perms, r.createDestDirs)
	if err != nil {
		return nil, RenderResult{}, errors.Wrap(err, "failed writing file")
	}

	return &stagedWrite{
		path:       r.path,
		tmp:        tmp,
		backup:     r.backup,
		existed:    fileExists,
		previous:   existing,
		createdDir: created,
	}, RenderResult{DidRender: true, WouldRender: true}, nil
}

// commit backs up the destination if present and moves the staged file over
// it.
func (w *stagedWrite) commit() error {
	if w.existed {
		w.backup(w.path)
	}
	return renameFile(w.tmp, w.path)
}

// discard removes the staged file and any directory made for it.
func (w *stagedWrite) discard() {
	os.Remove(w.tmp)
	if w.createdDir != "" {
		os.RemoveAll(w.createdDir)
	}
}

// revert restores the destination to its state before commit.
func (w *stagedWrite) revert() error {
	if w.existed {
		return atomicWrite(w.path, w.previous, 0, false)
	}
	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if w.createdDir != "" {
		return os.RemoveAll(w.createdDir)
	}
	return nil
}

// Backup creates a [filename].bak hard link, preserving the mode. The
// previous backup is kept as [filename].old.bak until the new one is in
// place.
func Backup(path string) {
	if path == "" {
		return
	}
	bak, old := path+".bak", path+".old.bak"
	os.Rename(bak, old) // ignore error
	if err := os.Link(path, bak); err == nil {
		os.Remove(old) // ignore error
	}
}

// atomicWrite writes contents to a temporary file next to path and renames
// it into place, so a reader never sees a partially written file.
func atomicWrite(
	path string, contents []byte, perms os.FileMode, createDestDirs bool,
) error {
	tmp, _, err := writeTemp(path, contents, perms, createDestDirs)
	if err != nil {
		return err
	}
	if err := renameFile(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// writeTemp writes contents to a temporary file in path's directory and
// returns its name, along with the topmost directory it had to create.
//
// A missing parent directory is created with 0755 when createDestDirs is
// set, otherwise errNoParentDir is returned. With perms 0 the mode and
// ownership of an existing file at path are kept, and new files get 0644.
func writeTemp(
	path string, contents []byte, perms os.FileMode, createDestDirs bool,
) (string, string, error) {
	if path == "" {
		return "", "", errMissingDest
	}

	parent := filepath.Dir(path)
	var created string
	if _, err := os.Stat(parent); os.IsNotExist(err) {
		if !createDestDirs {
			return "", "", errNoParentDir
		}
		created = topmostMissing(parent)
		if err := os.MkdirAll(parent, defaultDirPerms); err != nil {
			return "", "", err
		}
	}

	f, err := os.CreateTemp(parent, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return "", created, err
	}
	cleanup := func() {
		f.Close()
		os.Remove(f.Name())
	}

	if _, err := f.Write(contents); err != nil {
		cleanup()
		return "", created, err
	}

	if err := f.Sync(); err != nil {
		cleanup()
		return "", created, err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", created, err
	}

	if perms == 0 {
		currentInfo, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			perms = defaultFilePerms
		case err != nil:
			os.Remove(f.Name())
			return "", created, err
		default:
			perms = currentInfo.Mode()
			preserveFilePermissions(f.Name(), currentInfo)
		}
	}

	if err := os.Chmod(f.Name(), perms); err != nil {
		os.Remove(f.Name())
		return "", created, err
	}

	return f.Name(), created, nil
}

// topmostMissing returns the highest ancestor of dir (or dir itself) that
// does not exist yet.
func topmostMissing(dir string) string {
	missing := dir
	for p := filepath.Dir(dir); p != dir; dir, p = p, filepath.Dir(p) {
		if _, err := os.Stat(p); err == nil {
			break
		}
		missing = p
	}
	return missing
}
