package inventory

import (
	"time"

	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/utils"
)

// BuildSegments partitions dates into maximal runs of equal open/closed
// status for one room. The segments cover every index of dates exactly once,
// in order, and adjacent segments always differ in status.
func BuildSegments(s *Store, roomID string, dates []time.Time) []models.Segment {
	var segments []models.Segment
	for i, d := range dates {
		status := models.SegmentOpen
		if s.IsClosed(roomID, d) {
			status = models.SegmentClosed
		}
		key := utils.DateKey(d)

		if n := len(segments); n > 0 && segments[n-1].Status == status {
			segments[n-1].EndIndex = i
			segments[n-1].DateKeys = append(segments[n-1].DateKeys, key)
			continue
		}
		segments = append(segments, models.Segment{
			Status:     status,
			StartIndex: i,
			EndIndex:   i,
			DateKeys:   []string{key},
		})
	}
	return segments
}
