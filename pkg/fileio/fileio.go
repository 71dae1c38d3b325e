// Package fileio provides a thread-safe, byte-addressed view over a single
// on-disk file. It implements absolute-offset seeks and fixed-width integer
// read/write primitives in a fixed (little-endian) byte order.
package fileio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
)

// File represents a thread-safe, byte-addressable file handle.
// It provides concurrent read/write operations at absolute offsets,
// treating the underlying file as an arbitrarily extensible byte array.
type File struct {
	handle *os.File     // Underlying file descriptor for I/O operations
	mu     sync.RWMutex // Read-Write mutex for thread-safe file access
}

// Open creates and initializes a new File instance at path.
// Parameters:
//   - path: The file path where the file will be created/opened.
//
// Returns:
//   - *File: Pointer to the new File instance.
//   - error: Any error that occurred during creation.
//
// The function will:
//  1. Create all necessary directories in the path.
//  2. Create or open the file with read/write permissions.
//  3. Return a configured File instance.
func Open(path string) (*File, error) {
	// Create all directories in the path if they don't exist.
	// Uses 0755 permissions: rwx for owner, rx for group and others.
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	// Open or create the file with read-write permissions.
	// O_RDWR: Open for reading and writing.
	// O_CREATE: Create file if it doesn't exist.
	// 0644 permissions: rw for owner, r for group and others.
	handle, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	return &File{
		handle: handle,
	}, nil
}

// ReadAt performs a thread-safe read operation from the file.
// Parameters:
//   - offset: Position in the file to start reading from.
//   - size: Number of bytes to read.
//
// Returns:
//   - []byte: The read data.
//   - error: Any error that occurred during reading.
func (f *File) ReadAt(offset int64, size int) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data := make([]byte, size)
	_, err := f.handle.ReadAt(data, offset)
	return data, err
}

// WriteAt performs a thread-safe write operation to the file.
// Parameters:
//   - offset: Position in the file to start writing at.
//   - data: Bytes to write to the file.
//
// Returns:
//   - error: Any error that occurred during writing.
func (f *File) WriteAt(offset int64, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, err := f.handle.WriteAt(data, offset)
	return err
}

// Size returns the current length of the file in bytes.
func (f *File) Size() (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	stat, err := f.handle.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// ReadInt64 reads a signed 64-bit integer at the given absolute offset.
func (f *File) ReadInt64(offset int64) (int64, error) {
	data, err := f.ReadAt(offset, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(data)), nil
}

// WriteInt64 writes a signed 64-bit integer at the given absolute offset.
func (f *File) WriteInt64(offset int64, val int64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(val))
	return f.WriteAt(offset, buf)
}

// ReadInt32 reads a signed 32-bit integer at the given absolute offset.
func (f *File) ReadInt32(offset int64) (int32, error) {
	data, err := f.ReadAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(data)), nil
}

// WriteInt32 writes a signed 32-bit integer at the given absolute offset.
func (f *File) WriteInt32(offset int64, val int32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(val))
	return f.WriteAt(offset, buf)
}

// Close safely closes the file.
// This method should be called when the file is no longer needed
// to free up system resources.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.handle.Close()
}
