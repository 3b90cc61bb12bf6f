package dump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const loadChunkSize = 1 << 20 // 1 MiB

// ProgressFunc receives bytes-read / total-bytes updates during a load.
// Advisory only: callers must not derive correctness from it.
type ProgressFunc func(bytesRead, totalBytes int64)

// readAll reads the whole file in chunks so large dumps can report
// progress to an interactive caller.
func readAll(path string, progress ProgressFunc) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("unable to open dump: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("unable to stat dump: %w", err)
	}
	total := info.Size()

	data := make([]byte, 0, total)
	chunk := make([]byte, loadChunkSize)
	var bytesRead int64

	for {
		n, err := f.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
			bytesRead += int64(n)
			if progress != nil {
				progress(bytesRead, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read dump: %w", err)
		}
	}

	if progress != nil {
		progress(total, total)
	}
	return data, nil
}

// AsyncLoader runs a single load off the caller's goroutine. Loads are
// strictly serialized: starting a second load while one is in flight fails
// with ErrLoadInProgress, and the caller must Wait before querying the
// resulting store.
type AsyncLoader struct {
	mu       sync.Mutex
	inFlight bool
	done     chan loadResult
}

type loadResult struct {
	store *Store
	err   error
}

func NewAsyncLoader() *AsyncLoader {
	return &AsyncLoader{}
}

// Start kicks off a load in the background.
func (l *AsyncLoader) Start(path string, progress ProgressFunc) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inFlight {
		return ErrLoadInProgress
	}
	l.inFlight = true
	l.done = make(chan loadResult, 1)

	go func() {
		store, err := LoadWithProgress(path, progress)
		l.done <- loadResult{store: store, err: err}
	}()
	return nil
}

// Wait blocks until the in-flight load completes and returns its result.
func (l *AsyncLoader) Wait() (*Store, error) {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()

	if done == nil {
		return nil, errors.New("no load has been started")
	}

	result := <-done

	l.mu.Lock()
	l.inFlight = false
	l.done = nil
	l.mu.Unlock()

	return result.store, result.err
}
