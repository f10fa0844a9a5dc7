// Package selfupdate replaces the running binary with a GitHub release.
package selfupdate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("development builds do not self-update")
	ErrAlreadyLatest = errors.New("no newer release available")
	ErrChecksum      = errors.New("sha256 mismatch")
)

// Stage identifies a step of Update, in the order they run.
type Stage string

const (
	StageResolve Stage = "resolve"
	StageFetch   Stage = "fetch"
	StageVerify  Stage = "verify"
	StageUnpack  Stage = "unpack"
	StageInstall Stage = "install"
	StageDone    Stage = "done"
)

type UpdateInput struct {
	CurrentVersion string

	// TargetVersion pins a release tag. Empty means the latest release.
	TargetVersion string
}

type UpdateProgress struct {
	Stage   Stage
	Message string
}

// release is one downloadable archive of a tagged release.
type release struct {
	tag   string
	asset string
}

// Update installs the release archive for this platform over the running
// executable once its sha256 matches the release's checksums.txt.
// progress may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	report := func(s Stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: s, Message: fmt.Sprintf(format, args...)})
		}
	}
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := canonical(input.TargetVersion)
	if tag == "" {
		report(StageResolve, "Looking up the newest release of %s", c.repo)
		var err error
		if tag, err = c.latestTag(ctx, input.CurrentVersion); err != nil {
			return err
		}
	}

	asset, err := releaseAsset(c.repo, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	rel := release{tag: tag, asset: asset}

	report(StageFetch, "Fetching %s (%s)", rel.asset, rel.tag)
	archive, err := c.download(ctx, c.assetURL(rel.tag, rel.asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Checking sha256 against checksums.txt")
	if err := c.verifyRelease(ctx, rel, archive); err != nil {
		return err
	}

	report(StageUnpack, "Unpacking %s", c.repo)
	binary, err := extractBinary(archive, rel.asset, c.repo)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(StageInstall, "Installing over the current executable")
	if err := c.install(binary); err != nil {
		return err
	}

	report(StageDone, "worksheetai is now %s", rel.tag)
	return nil
}

// latestTag returns the newest release tag, or ErrAlreadyLatest when current
// is already up to date.
func (c *Checker) latestTag(ctx context.Context, current string) (string, error) {
	result, err := c.Check(ctx, &CheckInput{Version: current})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return result.LatestVersion, nil
}

func (c *Checker) verifyRelease(ctx context.Context, rel release, archive []byte) error {
	sums, err := c.download(ctx, c.assetURL(rel.tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[rel.asset]
	if !ok {
		return fmt.Errorf("checksums.txt for %s does not list %s", rel.tag, rel.asset)
	}
	return verifyChecksum(archive, want)
}

func (c *Checker) install(binary []byte) error {
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(binary)
	if err := replaceExecutable(binary, target, sum[:]); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}
	return nil
}

func (c *Checker) assetURL(tag, name string) string {
	base := strings.TrimRight(c.downloadBaseURL, "/")
	return strings.Join([]string{base, c.owner, c.repo, "releases", "download", tag, name}, "/")
}

var goreleaserArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// releaseAsset names the archive goreleaser publishes for a platform. macOS
// ships a single universal archive.
func releaseAsset(project, goos, goarch string) (string, error) {
	var osName, ext string
	switch goos {
	case "darwin":
		return project + "_Darwin_all.tar.gz", nil
	case "linux":
		osName, ext = "Linux", ".tar.gz"
	case "windows":
		osName, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("no release build for %s", goos)
	}
	arch, ok := goreleaserArch[goarch]
	if !ok {
		return "", fmt.Errorf("no release build for %s/%s", goos, goarch)
	}
	return project + "_" + osName + "_" + arch + ext, nil
}

func (c *Checker) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads sha256sum output. A leading "*" on the file name
// (binary mode) is ignored; lines without exactly two fields are skipped.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != strings.ToLower(wantHex) {
		return fmt.Errorf("%w: want %s, have %s", ErrChecksum, wantHex, got)
	}
	return nil
}
