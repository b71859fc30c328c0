package library

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ytget/media-player/internal/extract"
	"github.com/ytget/media-player/internal/model"
	"github.com/ytget/media-player/internal/platform"
)

// MetadataDirName is the subdirectory of the download directory holding the
// JSON sidecars and thumbnails
const MetadataDirName = "metadata"

// DerivedIDLength is the hex prefix length of the hashed fallback id
const DerivedIDLength = 10

const thumbnailTimeout = 15 * time.Second

// Store reads and writes the metadata directory. A store is bound to one
// download directory; all sidecars live in its metadata subdirectory.
type Store struct {
	downloadDir string
	metadataDir string
	client      *http.Client
}

// NewStore creates a store for the given download directory, creating the
// metadata subdirectory when missing
func NewStore(downloadDir string) (*Store, error) {
	metadataDir := filepath.Join(downloadDir, MetadataDirName)
	if err := platform.CreateDirectoryIfNotExists(metadataDir); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}

	return &Store{
		downloadDir: downloadDir,
		metadataDir: metadataDir,
		client:      &http.Client{Timeout: thumbnailTimeout},
	}, nil
}

// MetadataDir returns the directory holding sidecars and thumbnails
func (s *Store) MetadataDir() string {
	return s.metadataDir
}

// DeriveID returns the stable identifier for a result: the extractor's own id
// when present, otherwise a short hash of title and uploader.
func DeriveID(res *extract.Result) string {
	if res.ID != "" {
		return res.ID
	}

	sum := sha256.Sum256([]byte(res.Title + "\x00" + res.Uploader))
	return hex.EncodeToString(sum[:])[:DerivedIDLength]
}

// Persist converts a raw extractor result into a library record and writes it
// to disk. The thumbnail download is best-effort; the JSON write is atomic via
// a temp file rename. Persisting the same item again overwrites its sidecar.
func (s *Store) Persist(res *extract.Result, kind model.MediaKind) (*model.MediaMetadata, error) {
	id := DeriveID(res)

	md := &model.MediaMetadata{
		ID:                id,
		Title:             res.Title,
		UploadDate:        res.UploadDate,
		DurationSeconds:   res.DurationSeconds,
		Uploader:          res.Uploader,
		ThumbnailURL:      res.ThumbnailURL,
		ViewCount:         res.ViewCount,
		LikeCount:         res.LikeCount,
		Description:       res.Description,
		SourceURL:         res.SourceURL,
		ExtractorName:     res.ExtractorName,
		MediaKind:         kind.String(),
		DownloadTimestamp: time.Now(),
		LocalFilePath:     res.LocalFilePath,
	}

	if res.ThumbnailURL != "" {
		name, err := s.fetchThumbnail(id, res.ThumbnailURL)
		if err != nil {
			log.Printf("Failed to fetch thumbnail for %q: %v", res.Title, err)
		} else {
			md.ThumbnailFileName = &name
		}
	}

	if err := s.writeSidecar(md); err != nil {
		return nil, err
	}

	return md, nil
}

// fetchThumbnail downloads the thumbnail next to the sidecar and returns its
// file name
func (s *Store) fetchThumbnail(id, url string) (string, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	name := id + ".jpg"
	f, err := os.Create(filepath.Join(s.metadataDir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return name, nil
}

// writeSidecar writes the pretty-printed JSON record atomically
func (s *Store) writeSidecar(md *model.MediaMetadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	final := s.sidecarPath(md.ID)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move metadata file into place: %w", err)
	}

	return nil
}

func (s *Store) sidecarPath(id string) string {
	return filepath.Join(s.metadataDir, id+".json")
}

// Load reads one sidecar by id
func (s *Store) Load(id string) (*model.MediaMetadata, error) {
	data, err := os.ReadFile(s.sidecarPath(id))
	if err != nil {
		return nil, err
	}

	var md model.MediaMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", id, err)
	}

	return &md, nil
}

// List scans the metadata directory and returns the library entries, newest
// first. Malformed sidecars are skipped with a warning; entries whose media
// file has disappeared are filtered out.
func (s *Store) List() ([]*model.MediaMetadata, error) {
	entries, err := os.ReadDir(s.metadataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata directory: %w", err)
	}

	var items []*model.MediaMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.metadataDir, entry.Name()))
		if err != nil {
			log.Printf("Skipping unreadable metadata file %s: %v", entry.Name(), err)
			continue
		}

		var md model.MediaMetadata
		if err := json.Unmarshal(data, &md); err != nil {
			log.Printf("Skipping malformed metadata file %s: %v", entry.Name(), err)
			continue
		}

		if md.LocalFilePath != "" {
			if _, err := os.Stat(md.LocalFilePath); err != nil {
				continue
			}
		}

		items = append(items, &md)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].DownloadTimestamp.After(items[j].DownloadTimestamp)
	})

	return items, nil
}

// DeleteOutcome reports what happened to one file during Delete
type DeleteOutcome struct {
	Path    string
	Removed bool
	Err     error
}

// DeleteReport collects the independent per-file outcomes of one Delete call
type DeleteReport struct {
	Metadata  DeleteOutcome
	Media     DeleteOutcome
	Thumbnail DeleteOutcome
}

// Failed reports whether any present file could not be removed
func (r DeleteReport) Failed() bool {
	return r.Metadata.Err != nil || r.Media.Err != nil || r.Thumbnail.Err != nil
}

// Delete removes the entry's sidecar, media file and thumbnail. The three
// removals are attempted independently; a missing file is reported as not
// removed with a nil error, not as a failure.
func (s *Store) Delete(id string) DeleteReport {
	var report DeleteReport

	md, err := s.Load(id)

	mediaPath := ""
	thumbPath := ""
	if err == nil {
		mediaPath = md.LocalFilePath
		if md.ThumbnailFileName != nil {
			thumbPath = filepath.Join(s.metadataDir, *md.ThumbnailFileName)
		}
	} else {
		// Without a readable sidecar the thumbnail can still be found by
		// convention; the media file cannot.
		thumbPath = filepath.Join(s.metadataDir, id+".jpg")
	}

	report.Metadata = removeFile(s.sidecarPath(id))
	report.Media = removeFile(mediaPath)
	report.Thumbnail = removeFile(thumbPath)

	return report
}

// removeFile deletes one file, treating an empty path or a missing file as a
// skip
func removeFile(path string) DeleteOutcome {
	out := DeleteOutcome{Path: path}
	if path == "" {
		return out
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		out.Removed = true
	case os.IsNotExist(err):
	default:
		out.Err = err
	}

	return out
}
