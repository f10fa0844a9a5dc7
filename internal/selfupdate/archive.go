package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// maxBinarySize caps how much of an archive entry is read into memory.
const maxBinarySize = 256 << 20

var errNoBinary = errors.New("executable missing from release archive")

// entryFunc is called for each regular file in an archive. Returning
// errStopWalk ends the walk early without an error.
type entryFunc func(name string, r io.Reader) error

var errStopWalk = errors.New("stop walk")

// extractBinary returns the executable named binary (binary.exe for zip
// archives) from a release archive, wherever it sits in the tree.
func extractBinary(archive []byte, asset, binary string) ([]byte, error) {
	want := binary
	walk := walkTarGz
	if strings.HasSuffix(asset, ".zip") {
		want, walk = binary+".exe", walkZip
	}

	var found []byte
	err := walk(archive, func(name string, r io.Reader) error {
		if path.Base(name) != want {
			return nil
		}
		data, err := io.ReadAll(io.LimitReader(r, maxBinarySize+1))
		if err != nil {
			return err
		}
		if len(data) > maxBinarySize {
			return fmt.Errorf("%s is larger than %d bytes", name, maxBinarySize)
		}
		found = data
		return errStopWalk
	})
	switch {
	case errors.Is(err, errStopWalk):
		return found, nil
	case err != nil:
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %s", errNoBinary, want)
	}
}

func walkTarGz(data []byte, fn entryFunc) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gunzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if err := fn(hdr.Name, tr); err != nil {
			return err
		}
	}
}

func walkZip(data []byte, fn entryFunc) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := visitZipEntry(f, fn); err != nil {
			return err
		}
	}
	return nil
}

func visitZipEntry(f *zip.File, fn entryFunc) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("unzip %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	return fn(f.Name, rc)
}

// replaceExecutable stages binary in target's directory, confirms the staged
// copy still hashes to wantSum, then renames it over target with target's
// original permissions.
func replaceExecutable(binary []byte, target string, wantSum []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	dir, name := filepath.Split(target)
	staged, err := os.CreateTemp(dir, "."+name+".new-*")
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	stagedPath := staged.Name()
	defer func() { _ = os.Remove(stagedPath) }()

	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(staged, h), bytes.NewReader(binary))
	if cerr := staged.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}

	onDisk, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	if sum := sha256.Sum256(onDisk); !bytes.Equal(sum[:], wantSum) || !bytes.Equal(h.Sum(nil), wantSum) {
		return fmt.Errorf("%w: staged copy of %s", ErrChecksum, name)
	}

	if err := os.Chmod(stagedPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(stagedPath, target); err != nil {
		return fmt.Errorf("swap executable: %w", err)
	}
	return nil
}
