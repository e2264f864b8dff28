package allocator

import (
	"cmp"
	"slices"
)

// ComputeStats derives load statistics from a set of assignments.
//
// Every jury member gets a load entry, including those with no assignments, so
// min/max/avg reflect the whole pool. Assignments referencing a jury that is not
// in juries still get an entry (with an empty name) rather than being dropped.
func ComputeStats(juries []JuryMember, assignments []Assignment) Stats {
	counts := make(map[int64]int, len(juries))
	names := make(map[int64]string, len(juries))

	for _, jury := range juries {
		counts[jury.ID] = 0
		names[jury.ID] = jury.Name
	}
	for _, a := range assignments {
		counts[a.JuryID]++
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	stats := Stats{
		Total: len(assignments),
		Loads: make([]JuryLoad, 0, len(ids)),
	}

	if len(ids) == 0 {
		return stats
	}

	stats.Min = counts[ids[0]]
	stats.Max = counts[ids[0]]
	sum := 0
	for _, id := range ids {
		count := counts[id]
		stats.Loads = append(stats.Loads, JuryLoad{JuryID: id, Name: names[id], Count: count})
		stats.Min = min(stats.Min, count)
		stats.Max = max(stats.Max, count)
		sum += count
	}
	stats.Avg = float64(sum) / float64(len(ids))

	return stats
}

// LoadFor returns the load of a single jury member, or 0 if it has none
func (s Stats) LoadFor(juryID int64) int {
	idx, found := slices.BinarySearchFunc(s.Loads, juryID, func(l JuryLoad, id int64) int {
		return cmp.Compare(l.JuryID, id)
	})
	if !found {
		return 0
	}
	return s.Loads[idx].Count
}
