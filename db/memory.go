package db

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/cbsinteractive/timecode-service/clip"
)

// MemoryRepository keeps timelines in process. Values are stored
// encoded, so callers never share a *clip.Timeline with the repository.
type MemoryRepository struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: map[string][]byte{}}
}

func (r *MemoryRepository) Get(id string) (*clip.Timeline, error) {
	r.mu.RLock()
	data, ok := r.m[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrTimelineNotFound
	}
	t := &clip.Timeline{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *MemoryRepository) Put(t *clip.Timeline) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.m[t.ID] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return ErrTimelineNotFound
	}
	delete(r.m, id)
	return nil
}

func (r *MemoryRepository) List() ([]string, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.m))
	for id := range r.m {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}
