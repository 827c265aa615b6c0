// internal/app/service/library/purge.go
package library

import (
	"context"

	"go.uber.org/zap"
)

// PurgeStats summarizes one sweep of the trash.
type PurgeStats struct {
	Purged int
	Failed int
}

// PurgeTrashed permanently removes every file flagged for deletion.
// For each file the blob is released first; the metadata record is
// only removed once the bytes are gone, so a crash mid-sweep leaves a
// re-purgeable record rather than an orphaned blob. One file failing
// does not stop the sweep.
func (s *Service) PurgeTrashed(ctx context.Context) (PurgeStats, error) {
	var stats PurgeStats

	pending, err := s.files.ListPendingDelete(ctx)
	if err != nil {
		return stats, err
	}

	for _, f := range pending {
		if err := s.blobs.Delete(ctx, f.BlobPath); err != nil {
			stats.Failed++
			s.met.PurgeFailuresTotal.Inc()
			s.log.Error("purge: releasing blob",
				zap.String("file_id", f.ID.Hex()),
				zap.String("blob_path", f.BlobPath),
				zap.Error(err),
			)
			continue
		}
		if _, err := s.files.Delete(ctx, f.ID); err != nil {
			stats.Failed++
			s.met.PurgeFailuresTotal.Inc()
			s.log.Error("purge: removing metadata",
				zap.String("file_id", f.ID.Hex()),
				zap.Error(err),
			)
			continue
		}
		// Favorite marks pointing at the purged file go with it.
		if _, err := s.favs.DeleteByFile(ctx, f.ID); err != nil {
			s.log.Warn("purge: clearing favorites",
				zap.String("file_id", f.ID.Hex()),
				zap.Error(err),
			)
		}
		stats.Purged++
		s.met.FilesPurgedTotal.Inc()
	}

	if stats.Purged > 0 || stats.Failed > 0 {
		s.log.Info("purge sweep finished",
			zap.Int("purged", stats.Purged),
			zap.Int("failed", stats.Failed),
		)
	}
	return stats, nil
}
