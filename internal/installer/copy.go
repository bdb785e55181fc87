package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is matched by errors.Is for every *PathTraversalError.
var ErrPathTraversal = errors.New("path traversal detected")

// PathTraversalError reports a destination that resolves outside the
// install root.
type PathTraversalError struct {
	Dest string
	Root string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("path traversal detected: %s is outside %s", e.Dest, e.Root)
}

func (e *PathTraversalError) Is(target error) bool { return target == ErrPathTraversal }

// CopyStatus is the outcome of a single CopyArtifact call.
type CopyStatus string

const (
	CopyCopied         CopyStatus = "copied"
	CopySkippedExists  CopyStatus = "exists"
	CopySkippedMissing CopyStatus = "missing"
)

// CopyResult records what happened to one artifact.
type CopyResult struct {
	Source string // slash path inside the framework source
	Dest   string // absolute destination path
	Status CopyStatus
}

// ResolveDest joins dest onto root and checks that the result stays inside
// root. The returned path is absolute and clean.
func ResolveDest(root, dest string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving target root: %w", err)
	}
	absDest, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(dest)))
	if err != nil {
		return "", fmt.Errorf("resolving destination: %w", err)
	}

	prefix := absRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if absDest != absRoot && !strings.HasPrefix(absDest, prefix) {
		return "", &PathTraversalError{Dest: absDest, Root: absRoot}
	}
	return absDest, nil
}

// CopyArtifact copies src (a file or directory inside srcFS) to dest under
// root.
//
// A missing source is not an error. An existing destination is left alone
// unless overwrite is set. A destination outside root is always an error.
func CopyArtifact(srcFS fs.FS, src, root, dest string, overwrite bool) (CopyResult, error) {
	destPath, err := ResolveDest(root, dest)
	if err != nil {
		return CopyResult{Source: src}, err
	}
	res := CopyResult{Source: src, Dest: destPath}

	srcName := path.Clean(src)
	info, err := fs.Stat(srcFS, srcName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = CopySkippedMissing
			return res, nil
		}
		return res, fmt.Errorf("reading source %s: %w", src, err)
	}

	if !overwrite && pathExists(destPath) {
		res.Status = CopySkippedExists
		return res, nil
	}

	if info.IsDir() {
		err = copyTree(srcFS, srcName, destPath)
	} else {
		err = copyFile(srcFS, srcName, destPath)
	}
	if err != nil {
		return res, fmt.Errorf("copying %s to %s: %w", src, destPath, err)
	}

	res.Status = CopyCopied
	return res, nil
}

// copyTree copies the directory src in srcFS to dst, preserving structure.
func copyTree(srcFS fs.FS, src, dst string) error {
	return fs.WalkDir(srcFS, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := ""
		if p != src {
			rel = strings.TrimPrefix(p, src+"/")
			if src == "." {
				rel = p
			}
		}
		dstPath := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}
		return copyFile(srcFS, p, dstPath)
	})
}

// copyFile copies a single file from srcFS to dst, creating parents.
func copyFile(srcFS fs.FS, src, dst string) error {
	srcFile, err := srcFS.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	// Embedded files are read-only (0444); installed copies stay writable.
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode|0o200)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}

func pathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
