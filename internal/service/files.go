package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/exportfile"
	"github.com/and161185/keyvault/internal/vault"
)

// Export seals the vault and returns the encoded file with its suggested name.
func (s *VaultServiceImpl) Export(ctx context.Context, password, confirm []byte) (string, []byte, error) {
	f, p, err := s.mgr.Export(ctx, password, confirm)
	if err != nil {
		return "", nil, err
	}
	data, err := exportfile.Encode(f)
	if err != nil {
		return "", nil, err
	}
	return exportfile.DefaultFileName(p.SourceDeviceName, p.ExportedAt), data, nil
}

// ExportToFile writes an export to dest. An empty dest or a directory receives the
// default file name. Existing files are never overwritten.
func (s *VaultServiceImpl) ExportToFile(ctx context.Context, password, confirm []byte, dest string) (string, error) {
	name, data, err := s.Export(ctx, password, confirm)
	if err != nil {
		return "", err
	}
	path := dest
	if path == "" {
		path = name
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, name)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("export: %w", err)
	}
	s.log.Info("export written", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

// Import decodes an export file and applies it.
func (s *VaultServiceImpl) Import(ctx context.Context, data, password []byte) (vault.ImportResult, error) {
	f, err := exportfile.Decode(data)
	if err != nil {
		return vault.ImportResult{}, err
	}
	return s.mgr.Import(ctx, f, password)
}

// ImportFromFile reads at most exportfile.MaxFileSize+1 bytes of path and applies them.
func (s *VaultServiceImpl) ImportFromFile(ctx context.Context, path string, password []byte) (vault.ImportResult, error) {
	const op = "import"
	f, err := os.Open(path)
	if err != nil {
		return vault.ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, exportfile.MaxFileSize+1))
	if err != nil {
		return vault.ImportResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.Import(ctx, data, password)
}
