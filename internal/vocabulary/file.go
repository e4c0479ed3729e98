package vocabulary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// FileSource reads one word per line from a text file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Words(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, err
	}
	defer f.Close()

	return ReadLines(ctx, f)
}

// ReadLines splits r into lines, stopping early if ctx is cancelled. Lines
// have no length limit; overlong entries are left for Normalize to reject.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read dictionary: %w", err)
		}
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			lines = append(lines, line)
		}
		if err != nil {
			return lines, nil
		}
	}
}
