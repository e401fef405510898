package engine

// Attribution is one muscle credit emitted for a set. The primary muscle
// carries weight 1.0; each distinct secondary coarse group carries the
// configured secondary factor exactly once per set. FineOnly rows enrich the
// fine distribution without double-counting their coarse group: inclusion
// credits, and secondaries whose group the set already credited.
type Attribution struct {
	Group    string  // coarse group, "" when the fine muscle is unmapped
	Fine     string  // fine muscle
	Weight   float64 // 1.0 primary, secondary factor otherwise
	FineOnly bool    // excluded from coarse aggregation
}

// Attribute emits the attribution rows for one canonical set.
func Attribute(s CanonicalSet, st Settings) []Attribution {
	st = st.Normalize()

	var rows []Attribution
	emit := func(fine string, weight float64, fineOnly bool) {
		group, _ := CoarseGroup(fine)
		rows = append(rows, Attribution{Group: group, Fine: fine, Weight: weight, FineOnly: fineOnly})
		if target, ok := inclusionTargets[fine]; ok {
			targetGroup, _ := CoarseGroup(target)
			rows = append(rows, Attribution{Group: targetGroup, Fine: target, Weight: weight, FineOnly: true})
		}
	}

	if s.PrimaryMuscle == "" {
		return nil
	}
	emit(s.PrimaryMuscle, 1, false)

	primaryGroup := s.PrimaryGroup
	seenGroups := map[string]bool{}
	if primaryGroup != "" {
		seenGroups[primaryGroup] = true
	}
	seenFine := map[string]bool{s.PrimaryMuscle: true}

	for _, fine := range s.SecondaryMuscles {
		if fine == "" || seenFine[fine] {
			continue
		}
		seenFine[fine] = true

		group, mapped := CoarseGroup(fine)
		// A secondary never re-credits a group the set already credited, but
		// its fine muscle stays visible in the fine distribution.
		collided := mapped && seenGroups[group]
		if mapped && !collided {
			seenGroups[group] = true
		}
		emit(fine, st.SecondaryMuscleFactor, collided)
	}

	return rows
}
