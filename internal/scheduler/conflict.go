package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/routine/internal/models"
	"github.com/julianstephens/routine/internal/utils"
)

// intersects reports whether the half-open minute intervals [s1, e1) and
// [s2, e2) share at least one minute.
func intersects(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// Overlaps reports whether candidate and existing fall on the same weekday
// and their intervals intersect. Touching intervals (one ends as the other
// starts) do not overlap.
func Overlaps(candidate, existing models.Activity) bool {
	return candidate.Day == existing.Day &&
		intersects(candidate.Start(), candidate.End(), existing.Start(), existing.End())
}

// HasCollision reports whether candidate overlaps any activity other than
// the one with id excludeID. Pass 0 to exclude nothing.
func HasCollision(candidate models.Activity, activities []models.Activity, excludeID int64) bool {
	for _, a := range activities {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if Overlaps(candidate, a) {
			return true
		}
	}
	return false
}

// Resolve returns activities with every same-day activity that overlaps
// candidate moved to start when candidate ends, keeping its duration. The
// activity with id excludeID is never moved; it is returned with the other
// days. The candidate itself is not part of the result.
//
// Resolution is a single forward pass: an activity moved out of the
// candidate's way is not re-checked against its new neighbours.
//
// ErrOutOfRange is returned, and nothing is changed, when a moved activity
// would end after 23:59.
func Resolve(candidate models.Activity, activities []models.Activity, excludeID int64) ([]models.Activity, error) {
	var otherDay, sameDay []models.Activity
	for _, a := range activities {
		if a.Day == candidate.Day && (excludeID == 0 || a.ID != excludeID) {
			sameDay = append(sameDay, a)
		} else {
			otherDay = append(otherDay, a)
		}
	}

	newStart := candidate.End()
	for i, a := range sameDay {
		if !Overlaps(candidate, a) {
			continue
		}
		newEnd := newStart + a.Duration()
		if !utils.InDay(newEnd) {
			return nil, fmt.Errorf("%w: %q would end at minute %d", ErrOutOfRange, a.Title, newEnd)
		}
		sameDay[i] = a.WithInterval(newStart, newEnd)
	}

	resolved := make([]models.Activity, 0, len(activities))
	resolved = append(resolved, otherDay...)
	resolved = append(resolved, sameDay...)
	return resolved, nil
}

// Block is a free window of the day in minutes from midnight.
type Block struct {
	Start int
	End   int
}

func (b Block) String() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", b.Start/60, b.Start%60, b.End/60, b.End%60)
}

// FreeBlocks returns the gaps between dayStart and dayEnd that no activity on
// day occupies.
func FreeBlocks(day models.Weekday, activities []models.Activity, dayStart, dayEnd int) []Block {
	var busy []models.Activity
	for _, a := range activities {
		if a.Day == day {
			busy = append(busy, a)
		}
	}
	sort.SliceStable(busy, func(i, j int) bool {
		return busy[i].Start() < busy[j].Start()
	})

	var blocks []Block
	current := dayStart
	for _, a := range busy {
		if a.Start() >= dayEnd {
			break
		}
		if current < a.Start() {
			blocks = append(blocks, Block{Start: current, End: a.Start()})
		}
		if a.End() > current {
			current = a.End()
		}
	}
	if current < dayEnd {
		blocks = append(blocks, Block{Start: current, End: dayEnd})
	}
	return blocks
}
