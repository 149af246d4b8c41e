package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"geonest/internal/config"
	"geonest/internal/database"
	"geonest/internal/domain"
	"geonest/internal/geofeed"
)

const regenerateConcurrency = 4

// FilePath returns where the published CSV of a geofeed lives on disk.
func FilePath(geofeedID string) string {
	return filepath.Join(config.GetConfig().Publish.Dir, fileName(geofeedID))
}

func fileName(geofeedID string) string {
	return fmt.Sprintf("geofeed-%s.csv", geofeedID)
}

// PublishGeofeed writes the geofeed's current ranges as a CSV file under the
// public directory and marks it published. Returns the public URL and the
// number of rows written.
func PublishGeofeed(feed *domain.Geofeed) (string, int, error) {
	ranges, err := database.GetRangesOfGeofeed(feed.ID, feed.UserID)
	if err != nil {
		return "", 0, err
	}

	records := make([]geofeed.RangeRecord, 0, len(ranges))
	for _, r := range ranges {
		records = append(records, r.Record())
	}

	if err := writeFile(feed.ID, records); err != nil {
		return "", 0, err
	}

	if err := database.SetPublishedFlag(feed.ID, true); err != nil {
		return "", 0, err
	}

	return publicURL(feed.ID), len(records), nil
}

// UnpublishGeofeed removes the served file and clears the published flag.
// A file that is already gone is not an error.
func UnpublishGeofeed(feed *domain.Geofeed) error {
	if err := RemoveFile(feed.ID); err != nil {
		return err
	}
	return database.SetPublishedFlag(feed.ID, false)
}

func RemoveFile(geofeedID string) error {
	err := os.Remove(FilePath(geofeedID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublishedURL returns the public URL when the file exists on disk, "" otherwise.
func PublishedURL(geofeedID string) string {
	if _, err := os.Stat(FilePath(geofeedID)); err != nil {
		return ""
	}
	return publicURL(geofeedID)
}

func publicURL(geofeedID string) string {
	base := strings.TrimRight(config.GetConfig().Publish.BaseURL, "/")
	return base + "/geo/" + fileName(geofeedID)
}

func writeFile(geofeedID string, records []geofeed.RangeRecord) error {
	dir := config.GetConfig().Publish.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	content := geofeed.FormatCSV(records)
	if content != "" {
		content += "\n"
	}

	return os.WriteFile(FilePath(geofeedID), []byte(content), 0o644)
}

// RegenerateAll rewrites the published file of every published geofeed.
// Run at startup so files survive a wiped or relocated public directory.
func RegenerateAll() {
	feeds, err := database.ListPublishedGeofeeds()
	if err != nil {
		log.Error("publish: list published geofeeds", "error", err)
		return
	}
	if len(feeds) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(regenerateConcurrency)

	for _, feed := range feeds {
		feed := feed
		g.Go(func() error {
			ranges, err := database.GetRangesOfGeofeed(feed.ID, feed.UserID)
			if err != nil {
				log.Error("publish: load ranges for regenerate", "geofeed", feed.ID, "error", err)
				return nil
			}
			records := make([]geofeed.RangeRecord, 0, len(ranges))
			for _, r := range ranges {
				records = append(records, r.Record())
			}
			if err := writeFile(feed.ID, records); err != nil {
				log.Error("publish: regenerate file", "geofeed", feed.ID, "error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
	log.Debug("publish: regenerated published geofeeds", "count", len(feeds))
}
