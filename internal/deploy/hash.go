package deploy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// fileHash calculates the SHA256 hash of a file
func fileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// sameFile reports whether dst already holds the bytes and mode of src
func sameFile(src, dst string, srcInfo os.FileInfo) (bool, error) {
	dstInfo, err := os.Lstat(dst)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !dstInfo.Mode().IsRegular() ||
		dstInfo.Size() != srcInfo.Size() ||
		dstInfo.Mode().Perm() != srcInfo.Mode().Perm() {
		return false, nil
	}

	srcHash, err := fileHash(src)
	if err != nil {
		return false, err
	}
	dstHash, err := fileHash(dst)
	if err != nil {
		return false, err
	}
	return srcHash == dstHash, nil
}
