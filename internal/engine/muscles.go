package engine

// The six coarse muscle groups.
const (
	GroupBack      = "Back"
	GroupChest     = "Chest"
	GroupCore      = "Core"
	GroupShoulders = "Shoulders"
	GroupArms      = "Arms"
	GroupLegs      = "Legs"
)

// fineToCoarse maps each fine muscle to exactly one coarse group. Fine
// muscles absent from this table (Cardio, Full Body, Other) contribute to no
// coarse-group distribution.
var fineToCoarse = map[string]string{
	"Lats":       GroupBack,
	"Upper Back": GroupBack,
	"Lower Back": GroupBack,
	"Traps":      GroupBack,

	"Chest": GroupChest,

	"Abdominals": GroupCore,
	"Obliques":   GroupCore,

	"Shoulders": GroupShoulders,
	"Neck":      GroupShoulders,

	"Biceps":   GroupArms,
	"Triceps":  GroupArms,
	"Forearms": GroupArms,

	"Quadriceps": GroupLegs,
	"Hamstrings": GroupLegs,
	"Glutes":     GroupLegs,
	"Calves":     GroupLegs,
	"Abductors":  GroupLegs,
	"Adductors":  GroupLegs,
}

// inclusionTargets is the one-directional fine-muscle inclusion table:
// activity on the key muscle also counts toward the target muscle, but not
// the other way around. This mirrors observed catalog behavior and is
// deliberately an explicit table, not an inference.
var inclusionTargets = map[string]string{
	"Upper Back": "Traps",
}

// CoarseGroup returns the coarse group for a fine muscle, or "" and false
// for muscles outside the six-group taxonomy.
func CoarseGroup(fine string) (string, bool) {
	g, ok := fineToCoarse[fine]
	return g, ok
}

// CoarseGroups lists the six groups in their display order.
func CoarseGroups() []string {
	return []string{GroupBack, GroupChest, GroupCore, GroupShoulders, GroupArms, GroupLegs}
}
