package db

import (
	"errors"

	"github.com/cbsinteractive/timecode-service/clip"
)

var ErrTimelineNotFound = errors.New("timeline not found")

// Repository stores timelines by id
type Repository interface {
	Put(t *clip.Timeline) error
	Get(id string) (*clip.Timeline, error)
	Delete(id string) error
	List() ([]string, error)
}
