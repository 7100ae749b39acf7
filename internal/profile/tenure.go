package profile

import (
	"strings"
	"time"

	"github.com/jonathan/talent-scout/internal/dates"
	"github.com/jonathan/talent-scout/internal/types"
)

// RecentJoinThresholdMonths is the tenure below which a current role counts as a recent move.
const RecentJoinThresholdMonths = 4

// InferPriorEmployer finds the current position at targetCompany with targetTitle
// (both matched case-insensitively) and, when the candidate has held it for less
// than RecentJoinThresholdMonths at now, returns the employer held just before it.
//
// The returned entry keeps the prior employer's start date and recorded length
// but ends at now and is never current. Only the first matching current
// position is evaluated.
func InferPriorEmployer(experience []types.ExperienceEntry, targetCompany, targetTitle string, now time.Time) (types.ExperienceEntry, bool) {
	for index, entry := range experience {
		if !entry.IsCurrent {
			continue
		}
		if !strings.EqualFold(entry.Company, targetCompany) || !strings.EqualFold(entry.Title, targetTitle) {
			continue
		}

		end := dates.FromTime(now)
		tenure, ok := dates.MonthsBetween(entry.Interval.Start, end)
		if !ok || tenure >= RecentJoinThresholdMonths {
			return types.ExperienceEntry{}, false
		}

		previousIndex, hasPrevious := previousPosition(experience, index)
		if !hasPrevious {
			return types.ExperienceEntry{}, false
		}

		previous := experience[previousIndex]
		return types.ExperienceEntry{
			Company:        previous.Company,
			Title:          previous.Title,
			Location:       previous.Location,
			Interval:       previous.Interval.Closed(end),
			IsCurrent:      false,
			CompanyLogoURL: previous.CompanyLogoURL,
			TotalMonths:    durationOf(previous.Interval),
		}, true
	}

	return types.ExperienceEntry{}, false
}

// previousPosition returns the index of the position held before the one at
// index. Profile sources list positions newest first, so that is the next
// element that has ended; roles still held alongside the target are skipped.
func previousPosition(experience []types.ExperienceEntry, index int) (int, bool) {
	for previous := index + 1; previous < len(experience); previous++ {
		if experience[previous].IsCurrent || experience[previous].Interval.IsOngoing() {
			continue
		}
		return previous, true
	}
	return 0, false
}
