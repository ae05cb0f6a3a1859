// Package toolchain installs the pinned ARM cross-compiler toolchain.
package toolchain

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpy-ops/mpy-ops/internal/log"
)

// Service downloads and extracts toolchain archives.
type Service struct {
	client *http.Client
	logger log.Logger
}

// NewService creates a toolchain service using the default HTTP client.
func NewService(logger log.Logger) *Service {
	return &Service{
		client: http.DefaultClient,
		logger: logger,
	}
}

// NewServiceWithClient creates a toolchain service with an explicit
// HTTP client.
func NewServiceWithClient(logger log.Logger, client *http.Client) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Ensure installs the toolchain version under dir if it is not already
// present. Re-running against an installed toolchain performs no
// download and no extraction.
func (s *Service) Ensure(ctx context.Context, dir, version, url string) error {
	installDir := filepath.Join(dir, version)
	if _, err := os.Stat(installDir); err == nil {
		s.logger.Info("Compiler already exists", "path", installDir)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	s.logger.Info("Downloading compiler toolchain", "url", url)
	return s.downloadAndExtract(ctx, dir, url)
}

// downloadAndExtract streams the bzip2-compressed tar archive at url
// into dir. The archive carries its own versioned top-level directory.
func (s *Service) downloadAndExtract(ctx context.Context, dir, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download toolchain: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("toolchain download returned %s", resp.Status)
	}

	return s.extract(dir, tar.NewReader(bzip2.NewReader(resp.Body)))
}

func (s *Service) extract(dir string, tr *tar.Reader) error {
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		target, err := securePath(dir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, header.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil && !os.IsExist(err) {
				return fmt.Errorf("failed to link %s: %w", target, err)
			}
		default:
			s.logger.Debug("Skipping archive entry", "name", header.Name, "type", header.Typeflag)
		}
	}
}

// securePath joins an archive member name onto dir, rejecting names
// that would escape the extraction root.
func securePath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to extract %s: %w", target, err)
	}
	return nil
}
