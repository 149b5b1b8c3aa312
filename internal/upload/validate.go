package upload

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pitchreel/pitchreel/internal/errdefs"
)

// MaxAttachmentBytes is the ceiling the enhancement stage accepts for the
// auxiliary data file.
const MaxAttachmentBytes = 10 * 1024 * 1024

// Attachment is a CSV file that passed validation and may ride along with
// the next generation run.
type Attachment struct {
	Name string
	Size int64
	Path string
}

// Validate checks the file at path for inclusion in a generation run. The
// extension is checked before the file is touched; a bad extension never
// reaches the size check.
func Validate(fsys afero.Fs, path string) (*Attachment, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, errdefs.Validationf("invalid file type: %s (only .csv files are accepted)", filepath.Base(path))
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errdefs.Validationf("cannot read %s: %v", path, err)
	}
	if info.IsDir() {
		return nil, errdefs.Validationf("%s is a directory, not a CSV file", path)
	}
	if info.Size() > MaxAttachmentBytes {
		return nil, errdefs.Validationf("file too large: %s exceeds the 10 MiB limit", filepath.Base(path))
	}

	return &Attachment{
		Name: filepath.Base(path),
		Size: info.Size(),
		Path: path,
	}, nil
}
