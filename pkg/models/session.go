package models

// Session is the state bag accumulated across one ActionRequest lifecycle,
// such as a client-generated OTP captured in an earlier step and consumed by
// a payload builder. It is scoped to a single dispatch and discarded with it.
type Session struct {
	values map[string]any
}

func NewSession() *Session {
	return &Session{values: make(map[string]any)}
}

// Set stores a value under the given key, replacing any previous value.
func (s *Session) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}

	s.values[key] = value
}

// Value returns the stored value and whether the key was present.
func (s *Session) Value(key string) (any, bool) {
	v, ok := s.values[key]

	return v, ok
}

// StringValue returns the stored value when it is a string, or "".
func (s *Session) StringValue(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}

	return ""
}
