package rules

import "fmt"

// 各变体的决策表。入参值已排除 BOOKED/BACKUP/STANFORD/RESERVED（见 Classify）

func classifyStandard(v Value) Classification {
	switch v {
	case ValueBlank, ValueOK:
		return Classification{Bookable: true, BackupEligible: true, Category: CategoryAvailable}
	case ValueLast:
		return Classification{Bookable: true, BackupEligible: true, Category: CategoryLast}
	case ValueOKToBackup:
		return Classification{BackupEligible: true, Category: CategoryBackupOnly}
	case ValueOut:
		return Classification{Category: CategoryOut}
	case ValueMaxed:
		return Classification{Category: CategoryMaxed}
	case ValueDad:
		return Classification{Category: CategoryDad}
	}
	return Classification{Category: CategoryNotAvailable}
}

func classifyWeekendOnly(v Value, weekend bool) Classification {
	if v == ValueBlank && !weekend {
		return Classification{BackupEligible: true, Category: CategoryBackupOnly, Note: "weekday"}
	}
	return classifyStandard(v)
}

func classifyWeekendPreference(v Value, weekend, bold bool) Classification {
	if v == ValueOut || v == ValueMaxed {
		if weekend && !bold {
			c := classifyStandard(v)
			return Classification{BackupEligible: true, Category: c.Category, Note: "weekend"}
		}
		return classifyStandard(v)
	}
	return classifyStandard(v)
}

func classifyCapacityLimited(v Value) Classification {
	if v == ValueBlank {
		return Classification{Category: CategoryMaybe, Note: "check before counting"}
	}
	return classifyStandard(v)
}

func classifyBackupOnly(v Value) Classification {
	switch v {
	case ValueBlank, ValueOKToBackup, ValueDad:
		return Classification{BackupEligible: true, Category: CategoryBackupOnly}
	case ValueOK:
		return Classification{Bookable: true, BackupEligible: true, Category: CategoryAvailable}
	case ValueOut:
		return Classification{Category: CategoryOut}
	case ValueMaxed:
		return Classification{Category: CategoryMaxed}
	}
	// 其余值（含 LAST）在此变体下不可预订
	return Classification{Category: CategoryNotAvailable}
}

func classifyRestricted(v Value, year int) Classification {
	switch v {
	case ValueBlank:
		return Classification{Category: CategoryNotAvailable, Note: fmt.Sprintf("not in rotation (%d)", year)}
	case ValueOut:
		return Classification{Category: CategoryOut}
	case ValueMaxed:
		return Classification{Category: CategoryMaxed}
	case ValueDad:
		return Classification{Category: CategoryDad}
	}
	// OK/OK TO BACKUP/LAST 在本时代同样不参与排班
	return Classification{Category: CategoryNotAvailable}
}
