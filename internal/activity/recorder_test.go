package activity

import (
	"sync"
	"testing"
	"time"

	"geonest/internal/domain"
)

func TestRecordDeliversToSink(t *testing.T) {
	var mu sync.Mutex
	var got []domain.ActivityLog

	original := sink
	sink = func(entry domain.ActivityLog) error {
		mu.Lock()
		got = append(got, entry)
		mu.Unlock()
		return nil
	}
	t.Cleanup(func() { sink = original })

	Record(3, "geofeed.import", "Imported 5 ranges into \"office\"", "feed-id", "office")

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("recorded entry never reached the sink")
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if got[0].UserID != 3 || got[0].Action != "geofeed.import" || got[0].GeofeedID != "feed-id" {
		t.Fatalf("entry = %+v", got[0])
	}
}
