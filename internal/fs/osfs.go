package fs

import (
	"context"
	"os"
)

// OSFS is the concrete implementation of FS backed by the local OS filesystem.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Path:  path,
		Size:  st.Size(),
		MTime: st.ModTime(),
		IsDir: st.IsDir(),
	}, nil
}

func (o *OSFS) ReadDirNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdirnames(-1)
}

// RemoveAll removes path and anything below it. Only transient errors
// are retried.
func (o *OSFS) RemoveAll(ctx context.Context, path string) error {
	return retry(ctx, "remove", func() error {
		return os.RemoveAll(path)
	})
}
