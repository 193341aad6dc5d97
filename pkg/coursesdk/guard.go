package coursesdk

// Allowed reports whether a user holding the given role tags may enter a
// route or command requiring the given roles. An empty requirement admits
// everyone, including anonymous users; otherwise the user must hold at least
// one of the required roles.
//
// This is the whole of the client's access control: a pure predicate called
// by navigation guards, with enforcement proper living server-side.
func Allowed(userRoles, required []string) bool {
	if len(required) == 0 {
		return true
	}

	held := make(map[string]struct{}, len(userRoles))
	for _, r := range userRoles {
		held[r] = struct{}{}
	}

	for _, r := range required {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}
