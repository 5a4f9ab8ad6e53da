package courseController

import (
	"kursplatforma/models"
	courseValidator "kursplatforma/validators/course"
)

// Reconciliation outcomes for a course update. PartiallyBlocked means some
// stored lessons were kept because the course already has paying customers.
const (
	OutcomeApplied          = "primenjeno"
	OutcomePartiallyBlocked = "delimicno"
)

// ReconcilePlan is the three-way diff between the stored lesson list and a
// submitted one: lessons to create, to update, to delete, plus the ones
// whose deletion the has-sales rule blocked.
type ReconcilePlan struct {
	Creates    []models.Lesson
	Updates    []models.Lesson
	DeleteIDs  []string
	SkippedIDs []string
	Outcome    string
}

// ReconcileLessons diffs the incoming lesson list against the stored one by
// id. Order indices are rewritten to the submission position. When the
// course has sales, stored lessons missing from the submission are kept
// instead of deleted, so paying customers never lose access; additions and
// edits stay allowed. Kept lessons are renumbered after the submitted ones
// so no two lessons share an order index.
func ReconcileLessons(courseID string, existing []models.Lesson, incoming []courseValidator.LessonPayload, hasSales bool) ReconcilePlan {
	plan := ReconcilePlan{Outcome: OutcomeApplied}

	stored := make(map[string]models.Lesson, len(existing))
	for _, l := range existing {
		stored[l.ID] = l
	}

	seen := make(map[string]bool, len(incoming))
	for i, in := range incoming {
		if in.ID != "" {
			if current, ok := stored[in.ID]; ok {
				seen[in.ID] = true
				current.Name = in.Name
				current.Description = in.Description
				current.Duration = in.Duration
				current.Video = in.Video
				current.Order = i
				plan.Updates = append(plan.Updates, current)
				continue
			}
		}
		// No id, or an id we do not know: a new lesson.
		plan.Creates = append(plan.Creates, models.Lesson{
			Name:        in.Name,
			Description: in.Description,
			Duration:    in.Duration,
			Video:       in.Video,
			Order:       i,
			CourseID:    courseID,
		})
	}

	next := len(incoming)
	for _, l := range existing {
		if seen[l.ID] {
			continue
		}
		if hasSales {
			// The kept lesson moves behind the submitted ones; reusing its
			// old index could collide with a renumbered lesson.
			l.Order = next
			next++
			plan.Updates = append(plan.Updates, l)
			plan.SkippedIDs = append(plan.SkippedIDs, l.ID)
			continue
		}
		plan.DeleteIDs = append(plan.DeleteIDs, l.ID)
	}

	if len(plan.SkippedIDs) > 0 {
		plan.Outcome = OutcomePartiallyBlocked
	}

	return plan
}
