package workspace

import "github.com/riseshia/hi-friend/pkg/typeinfer"

// DropStalePaths removes every stale path from every method's
// declaration list, so methods whose only declarations were modified or
// deleted files become dangling and can be pruned by the caller before
// the next walk repopulates them.
func DropStalePaths(methods *typeinfer.MethodRegistry, changed *ChangedFiles) {
	if methods == nil || changed == nil {
		return
	}
	stale := changed.Stale()
	for _, m := range methods.All() {
		for _, path := range stale {
			m.RemovePath(path)
		}
	}
}

// DanglingMethods returns every method with no remaining declaration
// path, the set a host should drop from its registry entirely.
func DanglingMethods(methods *typeinfer.MethodRegistry) []*typeinfer.Method {
	if methods == nil {
		return nil
	}
	var out []*typeinfer.Method
	for _, m := range methods.All() {
		if m.IsDangling() {
			out = append(out, m)
		}
	}
	return out
}
