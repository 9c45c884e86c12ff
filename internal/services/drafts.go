package services

import (
	"context"
	"sync"
	"time"

	"fotoproof-backend/internal/proofing"
)

type draft struct {
	galleryID string
	set       *proofing.SelectionSet
	expiresAt time.Time
}

// DraftStore keeps each visitor session's unsubmitted selection in memory.
// A draft lives until its access token expires or it is submitted.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*draft
	now    func() time.Time
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*draft), now: time.Now}
}

// Toggle flips photoID in the session's draft and returns the draft ids and
// whether photoID is now selected.
func (d *DraftStore) Toggle(sessionID, galleryID, photoID string, expiresAt time.Time) ([]string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dr := d.lookup(sessionID, galleryID)
	if dr == nil {
		dr = &draft{galleryID: galleryID, set: proofing.NewSelectionSet(), expiresAt: expiresAt}
		d.drafts[sessionID] = dr
	}
	selected := dr.set.Toggle(photoID)
	return dr.set.IDs(), selected
}

// Get returns the session's draft ids, empty when there is none.
func (d *DraftStore) Get(sessionID, galleryID string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	dr := d.lookup(sessionID, galleryID)
	if dr == nil {
		return []string{}
	}
	return dr.set.IDs()
}

func (d *DraftStore) Clear(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, sessionID)
}

// Len is the number of live drafts.
func (d *DraftStore) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.drafts)
}

// Sweep drops expired drafts.
func (d *DraftStore) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	removed := 0
	for id, dr := range d.drafts {
		if !now.Before(dr.expiresAt) {
			delete(d.drafts, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (d *DraftStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Sweep()
		}
	}
}

// lookup must be called with mu held.
func (d *DraftStore) lookup(sessionID, galleryID string) *draft {
	dr, ok := d.drafts[sessionID]
	if !ok {
		return nil
	}
	if dr.galleryID != galleryID || !d.now().Before(dr.expiresAt) {
		delete(d.drafts, sessionID)
		return nil
	}
	return dr
}
