package arraylist

import (
	"github.com/samsarahq/coerce/conversion"
	"github.com/samsarahq/coerce/typedesc"
)

// CanConvertElements reports whether elements described by source can be
// converted to elements described by target. A nil descriptor means the
// element type is unconstrained and always matches. Otherwise checker
// decides; when it cannot (it is nil or it panics) the answer is false.
func CanConvertElements(source, target *typedesc.Descriptor, checker conversion.Checker) (ok bool) {
	if source == nil || target == nil {
		return true
	}
	if checker == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return checker.CanConvert(source, target)
}
