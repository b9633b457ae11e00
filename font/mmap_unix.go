//go:build unix

package font

import "os"

import "golang.org/x/sys/unix"

// Maps the whole file into memory, read-only. Empty files are
// read normally, since they can't be mapped.
func mapFile(path string) ([]byte, func() error, error) {
	file, err := os.Open(path)
	if err != nil { return nil, nil, err }
	defer file.Close()

	info, err := file.Stat()
	if err != nil { return nil, nil, err }
	size := info.Size()
	if size == 0 || int64(int(size)) != size {
		data, err := os.ReadFile(path)
		if err != nil { return nil, nil, err }
		return data, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		if err == unix.ENOMEM { return nil, nil, ErrOutOfMemory }
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
